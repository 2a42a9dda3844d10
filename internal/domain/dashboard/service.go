package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns the employee home screen, assembled concurrently
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
