package http

import (
	"encoding/json"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/member"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MemberHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type memberHandlerImpl struct {
	memberService member.Service
}

func NewMemberHandler(memberService member.Service) MemberHandler {
	return &memberHandlerImpl{memberService: memberService}
}

// Create handles POST /members
func (h *memberHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req member.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.memberService.Create(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member created", result)
}

// GetByID handles GET /members/{id}
func (h *memberHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.memberService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /members/{id}
func (h *memberHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req member.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.memberService.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member updated", nil)
}

// Deactivate handles DELETE /members/{id}
func (h *memberHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.memberService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member deactivated", nil)
}

// List handles GET /members
func (h *memberHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	filter := member.ListFilter{
		ActiveOnly: getBoolQueryParam(r, "active_only", false),
		Limit:      getIntQueryParam(r, "limit", 50),
		Offset:     getIntQueryParam(r, "offset", 0),
	}
	if groupID := r.URL.Query().Get("group_id"); groupID != "" {
		filter.GroupID = &groupID
	}

	result, err := h.memberService.List(r.Context(), organizationID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
