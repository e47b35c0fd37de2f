package http

import (
	"net/http"

	"github.com/fachturrpl1/absensi-sub002/internal/domain/dashboard"
	"github.com/fachturrpl1/absensi-sub002/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns the combined dashboard snapshot
	GetStats(w http.ResponseWriter, r *http.Request)
	// GetMonthlyTrend returns the six-month attendance trend
	GetMonthlyTrend(w http.ResponseWriter, r *http.Request)
	// GetGroupComparison returns groups ranked by attendance rate
	GetGroupComparison(w http.ResponseWriter, r *http.Request)
	// GetAttendanceGroups returns today's per-group rollup
	GetAttendanceGroups(w http.ResponseWriter, r *http.Request)
	// GetTodaySummary returns today's check-in summary
	GetTodaySummary(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard/stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")

	result, err := h.dashboardService.GetStats(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlyTrend handles GET /dashboard/monthly-trend
func (h *dashboardHandlerImpl) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")

	result, err := h.dashboardService.GetMonthlyTrend(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetGroupComparison handles GET /dashboard/group-comparison
func (h *dashboardHandlerImpl) GetGroupComparison(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")

	result, err := h.dashboardService.GetGroupComparison(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAttendanceGroups handles GET /dashboard/attendance-groups
func (h *dashboardHandlerImpl) GetAttendanceGroups(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")

	result, err := h.dashboardService.GetAttendanceGroups(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTodaySummary handles GET /dashboard/today-summary
func (h *dashboardHandlerImpl) GetTodaySummary(w http.ResponseWriter, r *http.Request) {
	organizationID := r.URL.Query().Get("organization_id")

	result, err := h.dashboardService.GetTodaySummary(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
