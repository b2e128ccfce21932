package dashboard

import "context"

type DashboardService interface {
	// GetDashboard computes attendance totals, lists and trends for the admin UI
	GetDashboard(ctx context.Context, req DashboardRequest) (DashboardResponse, error)
}
