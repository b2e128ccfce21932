package http

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetDashboard returns attendance totals, lists, series and rankings
	GetDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDashboard handles GET /admin/dashboard
func (h *dashboardHandlerImpl) GetDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dashboard.DashboardRequest{
		Date:       query.Get("date"),
		Start:      query.Get("start"),
		End:        query.Get("end"),
		ScheduleID: query.Get("schedule_id"),
		Department: query.Get("department"),
	}

	result, err := h.dashboardService.GetDashboard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
