package services

import (
	"time"

	"company-portal/internal/config"
	"company-portal/internal/domain"
	"company-portal/internal/metrics"
	"company-portal/internal/ordering"
	"company-portal/internal/store"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	store   *store.Store
	options metrics.Options
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(deps Dependencies) ReportingService {
	return newReportingService(newGateway(deps), deps)
}

func newReportingService(g *gateway, deps Dependencies) *reportingServiceImpl {
	window := metrics.DefaultDeadlineWindowDays
	if deps.Config != nil && deps.Config.Metrics.DeadlineWindowDays > 0 {
		window = deps.Config.Metrics.DeadlineWindowDays
	}
	return &reportingServiceImpl{
		store:   g.store,
		options: metrics.Options{DeadlineWindowDays: window},
	}
}

// Stats computes the derived statistics for the current state
func (r *reportingServiceImpl) Stats(now time.Time) metrics.DerivedStats {
	return metrics.ComputeWithOptions(r.store.Snapshot(), now, r.options)
}

// Dashboard assembles the overview from one snapshot so that every figure
// describes the same state.
func (r *reportingServiceImpl) Dashboard(now time.Time) *Dashboard {
	snap := r.store.Snapshot()
	today := domain.DateOf(now)

	dashboard := &Dashboard{
		Profile: snap.CompanyProfile,
		Stats:   metrics.ComputeWithOptions(snap, now, r.options),
		Missing: metrics.MissingRequiredFields(snap.CompanyProfile),
		Tasks:   ordering.View(snap.Tasks, today),
		Today:   today,
	}
	if snap.Session.IsAuthenticated() {
		user := snap.Session.User
		dashboard.User = &user
	}
	return dashboard
}

// NewServiceContainer wires every service around one shared store
func NewServiceContainer(deps Dependencies) *ServiceContainer {
	if deps.Config == nil {
		deps.Config = config.NewConfig()
	}
	g := newGateway(deps)

	return &ServiceContainer{
		AuthService:      newAuthService(g, deps),
		ProfileService:   newProfileService(g, deps),
		TaskService:      newTaskService(g, deps),
		ReportingService: newReportingService(g, deps),
	}
}
