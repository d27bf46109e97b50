package spy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/andrebq/jdwpspy/internal/store"
	"github.com/andrebq/jdwpspy/jdwp"
	"github.com/andrebq/jdwpspy/jdwp/verbose"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

type (
	// Recorder keeps a copy of every relayed packet.
	Recorder interface {
		Record(ctx context.Context, p jdwp.Packet, fromVM bool) error
	}

	// StoreRecorder writes packets of one session to the capture store.
	StoreRecorder struct {
		Store   *store.Store
		Session uuid.UUID
	}

	SessionMeta struct {
		ID        string    `json:"id"`
		Listen    string    `json:"listen"`
		Target    string    `json:"target"`
		StartedAt time.Time `json:"startedAt"`
	}
)

func metaKey(session string) string {
	return fmt.Sprintf("session/%v/meta", session)
}

// Begin saves the session metadata, it should be called before the first Record.
func (s *StoreRecorder) Begin(ctx context.Context, listen, target string) error {
	ops := s.Store.Ops(true)
	defer ops.Close()
	err := store.PutJSON(ctx, ops.KV(), metaKey(s.Session.String()), SessionMeta{
		ID:        s.Session.String(),
		Listen:    listen,
		Target:    target,
		StartedAt: time.Now(),
	})
	ops.Fail(err)
	return ops.Commit()
}

func (s *StoreRecorder) Record(ctx context.Context, p jdwp.Packet, fromVM bool) error {
	ops := s.Store.Ops(true)
	defer ops.Close()

	c := store.Capture{
		Session:  s.Session.String(),
		FromVM:   fromVM,
		PacketID: p.ID(),
		Flags:    p.Flags(),
		Packet:   jdwp.Marshal(p),
	}
	switch p := p.(type) {
	case *jdwp.CommandPacket:
		cmd := uint16(p.Command)
		c.Command = &cmd
	case *jdwp.ReplyPacket:
		code := uint16(p.ErrorCode)
		c.ErrorCode = &code
	}
	_, err := ops.Captures().Append(ctx, c)
	ops.Fail(err)
	return ops.Commit()
}

// Replay prints a recorded session as it was printed while relaying.
// Protocol state is rebuilt from the capture itself.
func Replay(ctx context.Context, st *store.Store, session string, w io.Writer) error {
	ops := st.Ops(false)
	captures, err := ops.Captures().List(ctx, session)
	ops.Close()
	if err != nil {
		return fmt.Errorf("spy: loading session %v: %w", session, err)
	}
	sess := NewSession()
	formatter := verbose.New(sess)
	for _, c := range captures {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := jdwp.ReadPacket(bytes.NewReader(c.Packet))
		if err != nil {
			return fmt.Errorf("spy: packet %v of session %v: %w", c.Seq, session, err)
		}
		if err := sess.Observe(p, c.FromVM); err != nil {
			fmt.Fprintf(w, "%v\n\n", err)
		}
		if err := formatter.Print(w, p, c.FromVM); err != nil && !verbose.IsDecodeError(err) {
			return err
		}
	}
	return nil
}

// ListSessions writes one line per recorded session.
func ListSessions(ctx context.Context, st *store.Store, w io.Writer) error {
	ops := st.Ops(false)
	defer ops.Close()
	sessions, err := ops.Captures().Sessions(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tTARGET\tPACKETS\tSIZE\tSTARTED\tDURATION")
	kv := ops.KV()
	for _, s := range sessions {
		var meta SessionMeta
		if err := store.GetJSON(ctx, &meta, kv, metaKey(s.Session)); err != nil && !store.IsNotFound(err) {
			return err
		}
		fmt.Fprintf(tw, "%v\t%v\t%v\t%v\t%v\t%v\n",
			s.Session, meta.Target, s.Packets,
			humanize.Bytes(uint64(s.Bytes)), humanize.Time(s.First),
			s.Last.Sub(s.First).Round(time.Millisecond))
	}
	return tw.Flush()
}
