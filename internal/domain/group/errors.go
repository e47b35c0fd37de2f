package group

import "errors"

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNameExists    = errors.New("group name already exists in this organization")
	ErrGroupNotEmpty = errors.New("group still has active members")
)
