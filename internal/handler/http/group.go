package http

import (
	"encoding/json"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/group"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type GroupHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type groupHandlerImpl struct {
	groupService group.Service
}

func NewGroupHandler(groupService group.Service) GroupHandler {
	return &groupHandlerImpl{groupService: groupService}
}

// Create handles POST /groups
func (h *groupHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req group.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.groupService.Create(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Group created", result)
}

// GetByID handles GET /groups/{id}
func (h *groupHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	result, err := h.groupService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /groups/{id}
func (h *groupHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req group.UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.groupService.Update(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group updated", nil)
}

// Delete handles DELETE /groups/{id}
func (h *groupHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.groupService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Group deleted", nil)
}

// List handles GET /groups
func (h *groupHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.groupService.List(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
