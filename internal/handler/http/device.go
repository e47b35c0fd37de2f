package http

import (
	"encoding/json"
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/device"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DeviceHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	AssignCard(w http.ResponseWriter, r *http.Request)
	RevokeCard(w http.ResponseWriter, r *http.Request)
	ListMemberCards(w http.ResponseWriter, r *http.Request)
}

type deviceHandlerImpl struct {
	deviceService device.Service
}

func NewDeviceHandler(deviceService device.Service) DeviceHandler {
	return &deviceHandlerImpl{deviceService: deviceService}
}

// Register handles POST /devices
func (h *deviceHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req device.RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.deviceService.Register(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Device registered, store the secret now", result)
}

// List handles GET /devices
func (h *deviceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID := claimString(r, "organization_id")
	if organizationID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	result, err := h.deviceService.List(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AssignCard handles POST /cards
func (h *deviceHandlerImpl) AssignCard(w http.ResponseWriter, r *http.Request) {
	var req device.AssignCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.deviceService.AssignCard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Card assigned", result)
}

// RevokeCard handles DELETE /cards/{id}
func (h *deviceHandlerImpl) RevokeCard(w http.ResponseWriter, r *http.Request) {
	if err := h.deviceService.RevokeCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Card revoked", nil)
}

// ListMemberCards handles GET /members/{id}/cards
func (h *deviceHandlerImpl) ListMemberCards(w http.ResponseWriter, r *http.Request) {
	result, err := h.deviceService.ListCardsByMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
