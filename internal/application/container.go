package application

import (
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/repository"
)

type Services struct {
	User      *UserService
	Ticket    *TicketService
	Project   *ProjectService
	Admin     *AdminService
	Report    *ReportService
	Dashboard *DashboardService
	Audit     *AuditService
}

// New wires every service. publisher receives change events; archiver may be
// nil when report archiving is not configured.
func New(repos *repository.Repos, publisher notify.Publisher, archiver Archiver) *Services {
	return &Services{
		User:      NewUserService(repos),
		Ticket:    NewTicketService(repos, publisher),
		Project:   NewProjectService(repos, publisher),
		Admin:     NewAdminService(repos, publisher),
		Report:    NewReportService(repos, archiver),
		Dashboard: NewDashboardService(repos),
		Audit:     NewAuditService(repos),
	}
}
