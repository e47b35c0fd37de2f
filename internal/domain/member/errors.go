package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrEmailExists    = errors.New("email already registered in this organization")
	ErrMemberInactive = errors.New("member is inactive")
)
