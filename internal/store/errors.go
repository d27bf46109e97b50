package store

import "errors"

type (
	errMsg string
)

const (
	ErrUnknownSession = errMsg("capture session not found")
)

var (
	errNotFound = errors.New("not found")
)

func (e errMsg) Error() string { return string(e) }

func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || errors.Is(err, ErrUnknownSession)
}
