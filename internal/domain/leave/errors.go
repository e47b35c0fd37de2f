package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrAlreadyProcessed    = errors.New("leave request already processed")
	ErrOverlappingLeave    = errors.New("member already has leave in this range")
	ErrInvalidDateRange    = errors.New("end date is before start date")
	ErrUnknownLeaveType    = errors.New("unknown leave type")
	ErrUnknownReviewAction = errors.New("review action must be approve or reject")
)
