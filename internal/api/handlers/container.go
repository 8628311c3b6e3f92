package handlers

import (
	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/notify"
)

type Handlers struct {
	User      *UserHandler
	Ticket    *TicketHandler
	Project   *ProjectHandler
	Report    *ReportHandler
	Admin     *AdminHandler
	Dashboard *DashboardHandler
	Audit     *AuditHandler
	Socket    *DashboardSocket
	Health    *HealthHandler
}

func New(svc *application.Services, hub *notify.Hub, health *HealthHandler) *Handlers {
	return &Handlers{
		User:      NewUserHandler(svc.User),
		Ticket:    NewTicketHandler(svc.Ticket),
		Project:   NewProjectHandler(svc.Project),
		Report:    NewReportHandler(svc.Report),
		Admin:     NewAdminHandler(svc.Admin),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Audit:     NewAuditHandler(svc.Audit),
		Socket:    NewDashboardSocket(hub),
		Health:    health,
	}
}
