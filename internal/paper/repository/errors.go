package repository

import "errors"

var (
	ErrUnsupportedPropertyType = errors.New("unsupported property type")
	ErrMissingProperty         = errors.New("missing property")
	ErrUnexpectedObject        = errors.New("unexpected object")
	ErrRemoteCall              = errors.New("remote call failed")
	ErrMissingBoardID          = errors.New("paper has no board id")
)
