package attendance

import "errors"

var (
	ErrRecordNotFound   = errors.New("attendance record not found")
	ErrAlreadyCheckedIn = errors.New("member has already checked in today")
	ErrNotCheckedIn     = errors.New("member has not checked in yet")
	ErrAlreadyFinalized = errors.New("attendance record has already been approved or rejected")
	ErrUnknownCard      = errors.New("card is not assigned to any active member")
	ErrInvalidStatus    = errors.New("invalid attendance status")
)
