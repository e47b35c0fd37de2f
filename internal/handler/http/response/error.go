package response

import (
	"errors"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/group"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/leave"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/notification"
	"github.com/fachturrpl1/absensi-sub002/internal/domain/organization"
	"github.com/fachturrpl1/absensi-sub002/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Organization domain errors
	case errors.Is(err, organization.ErrUnauthorized):
		Unauthorized(w, "No organization membership for caller")
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")

	// Member domain errors
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, member.ErrEmailExists):
		Conflict(w, "Email already registered in this organization")
	case errors.Is(err, member.ErrMemberInactive):
		Conflict(w, "Member is inactive")

	// Group domain errors
	case errors.Is(err, group.ErrGroupNotFound):
		NotFound(w, "Group not found")
	case errors.Is(err, group.ErrNameExists):
		Conflict(w, "Group name already exists")
	case errors.Is(err, group.ErrGroupNotEmpty):
		Conflict(w, "Group still has active members")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Member already has a record for this day")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "Member has not checked in yet")
	case errors.Is(err, attendance.ErrAlreadyFinalized):
		Conflict(w, "Attendance record already reviewed")
	case errors.Is(err, attendance.ErrUnknownCard):
		NotFound(w, "Card is not assigned to any active member")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Member already has leave in this range")
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrUnknownLeaveType),
		errors.Is(err, leave.ErrUnknownReviewAction):
		BadRequest(w, err.Error(), nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotRecipient):
		Forbidden(w, "Notification belongs to another member")

	// Device domain errors
	case errors.Is(err, device.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, device.ErrDeviceInactive), errors.Is(err, device.ErrInvalidSecret):
		Unauthorized(w, "Device authentication failed")
	case errors.Is(err, device.ErrCardAlreadyExists):
		Conflict(w, "Card uid already assigned")
	case errors.Is(err, device.ErrCardNotFound):
		NotFound(w, "Card not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
