package http

import (
	"encoding/json"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/attendance"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/middleware"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	CardCheckIn(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// Create handles POST /attendance
func (h *attendanceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req attendance.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CreateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance record created", result)
}

// GetByID handles GET /attendance/{id}
func (h *attendanceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := attendance.Filter{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Limit:    getIntQueryParam(r, "limit", 50),
		Offset:   getIntQueryParam(r, "offset", 0),
	}
	if memberID := r.URL.Query().Get("member_id"); memberID != "" {
		filter.MemberIDs = []string{memberID}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Statuses = []attendance.Status{attendance.Status(status)}
	}
	if vs := r.URL.Query().Get("validation_status"); vs != "" {
		validationStatus := attendance.ValidationStatus(vs)
		filter.ValidationStatus = &validationStatus
	}

	result, err := h.attendanceService.List(r.Context(), organizationID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Validate handles POST /attendance/{id}/validate
func (h *attendanceHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	reviewerID := claimString(r, "member_id")
	if reviewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.ValidateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.attendanceService.Validate(r.Context(), chi.URLParam(r, "id"), reviewerID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record reviewed", nil)
}

// CardCheckIn handles POST /device/attendance/swipe, authenticated by
// device credentials rather than a user JWT.
func (h *attendanceHandlerImpl) CardCheckIn(w http.ResponseWriter, r *http.Request) {
	organizationID := middleware.DeviceOrganizationID(r.Context())
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req attendance.CardCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CheckInByCard(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
