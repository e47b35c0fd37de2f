package device

import "errors"

var (
	ErrDeviceNotFound    = errors.New("device not found")
	ErrDeviceInactive    = errors.New("device is deactivated")
	ErrInvalidSecret     = errors.New("invalid device secret")
	ErrCardAlreadyExists = errors.New("card uid already assigned")
	ErrCardNotFound      = errors.New("card not found")
)
