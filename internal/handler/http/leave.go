package http

import (
	"encoding/json"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/leave"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

// Create handles POST /leave-requests
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// GetByID handles GET /leave-requests/{id}
func (h *leaveHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /leave-requests
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := leave.ListFilter{
		Limit:  getIntQueryParam(r, "limit", 50),
		Offset: getIntQueryParam(r, "offset", 0),
	}
	if memberID := r.URL.Query().Get("member_id"); memberID != "" {
		filter.MemberID = &memberID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		requestStatus := leave.RequestStatus(status)
		filter.Status = &requestStatus
	}

	result, err := h.leaveService.List(r.Context(), organizationID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Review handles POST /leave-requests/{id}/review
func (h *leaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	reviewerID := claimString(r, "member_id")
	if reviewerID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req leave.ReviewRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.leaveService.Review(r.Context(), chi.URLParam(r, "id"), reviewerID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed", nil)
}
