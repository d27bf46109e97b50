package jdwp

import (
	"encoding/binary"
	"fmt"
	"sync"
)

type (
	// IDSizes holds the byte width of each identifier kind, as reported by
	// the VM in reply to VIRTUAL_MACHINE - ID_SIZES.
	IDSizes struct {
		FieldID         int
		MethodID        int
		ObjectID        int
		ReferenceTypeID int
		FrameID         int
	}

	SizeRegistry struct {
		sync.RWMutex
		sizes IDSizes
		ready bool
	}
)

const (
	ErrInvalidIDSize = errMsg("jdwp: identifier size must be between 1 and 8")
)

// ParseIDSizes decodes the payload of an ID_SIZES reply.
func ParseIDSizes(data []byte) (IDSizes, error) {
	if len(data) < 20 {
		return IDSizes{}, fmt.Errorf("jdwp: id sizes reply has %d bytes, expected 20", len(data))
	}
	read := func(i int) int { return int(int32(binary.BigEndian.Uint32(data[i*4:]))) }
	sizes := IDSizes{
		FieldID:         read(0),
		MethodID:        read(1),
		ObjectID:        read(2),
		ReferenceTypeID: read(3),
		FrameID:         read(4),
	}
	return sizes, sizes.Validate()
}

func (s IDSizes) Validate() error {
	for _, v := range [...]int{s.FieldID, s.MethodID, s.ObjectID, s.ReferenceTypeID, s.FrameID} {
		if v < 1 || v > 8 {
			return fmt.Errorf("%w: %+v", ErrInvalidIDSize, s)
		}
	}
	return nil
}

func (r *SizeRegistry) Set(sizes IDSizes) error {
	if err := sizes.Validate(); err != nil {
		return err
	}
	r.Lock()
	defer r.Unlock()
	r.sizes = sizes
	r.ready = true
	return nil
}

// Get returns the negotiated sizes, ok is false until Set succeeds.
func (r *SizeRegistry) Get() (IDSizes, bool) {
	r.RLock()
	defer r.RUnlock()
	return r.sizes, r.ready
}

func (r *SizeRegistry) HasSizes() bool {
	_, ok := r.Get()
	return ok
}
