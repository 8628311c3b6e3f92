package routes

import (
	"github.com/TraderJoe97/StackFlow/internal/api/handlers"
	"github.com/TraderJoe97/StackFlow/internal/api/middleware"
	"github.com/TraderJoe97/StackFlow/internal/application"
	"github.com/TraderJoe97/StackFlow/internal/notify"
	"github.com/TraderJoe97/StackFlow/internal/policy"
	"github.com/TraderJoe97/StackFlow/internal/repository"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps is what the HTTP surface needs from the process. Archiver may be nil.
type Deps struct {
	DB       *gorm.DB
	Hub      *notify.Hub
	Policy   *policy.Policy
	Archiver application.Archiver
}

// RegisterRoutes mounts every endpoint on r and returns the services behind
// them so background jobs can share them.
func RegisterRoutes(r *gin.Engine, deps Deps) *application.Services {
	repos := repository.NewRepositories(deps.DB)
	services := application.New(repos, deps.Hub, deps.Archiver)
	h := handlers.New(services, deps.Hub, handlers.NewHealthHandler(deps.DB))
	authz := middleware.NewAuth(repos, deps.Policy)

	r.GET("/healthz", h.Health.Healthz)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(repos))
	{
		auth.GET("/auth/status", h.User.AuthStatus)
		auth.GET("/ws/dashboard", authz.Require(policy.DashboardView), h.Socket.Serve)

		dashboard := auth.Group("/dashboard", authz.Require(policy.DashboardView))
		{
			dashboard.GET("", h.Dashboard.Dashboard)
			dashboard.GET("/insights", h.Dashboard.Insights)
			dashboard.GET("/assigned-tickets/:id", h.Dashboard.AssignedTickets)
			dashboard.GET("/projects", h.Dashboard.Projects)
		}

		tickets := auth.Group("/tickets")
		{
			tickets.GET("/form-options", authz.Require(policy.TicketView), h.Ticket.FormOptions)
			tickets.POST("", authz.Require(policy.TicketCreate), h.Ticket.CreateTicket)
			tickets.GET("/:id", authz.Require(policy.TicketView), h.Ticket.GetTicket)
			tickets.PUT("/:id", authz.Require(policy.TicketEdit), h.Ticket.UpdateTicket)
			tickets.DELETE("/:id", authz.Require(policy.TicketDelete), h.Ticket.DeleteTicket)
			tickets.PUT("/:id/status", authz.Require(policy.TicketStatus), h.Ticket.UpdateTicketStatus)
			tickets.POST("/:id/comments", authz.Require(policy.TicketComment), h.Ticket.AddComment)
		}

		projects := auth.Group("/projects")
		{
			projects.GET("", authz.Require(policy.ProjectView), h.Project.GetProjects)
			projects.GET("/:id", authz.Require(policy.ProjectView), h.Project.GetProjectByID)
			projects.POST("", authz.Require(policy.ProjectCreate), h.Project.CreateProject)
			projects.PUT("/:id", authz.Require(policy.ProjectEdit), h.Project.UpdateProject)
			projects.DELETE("/:id", authz.Require(policy.ProjectDelete), h.Project.DeleteProject)
		}

		reports := auth.Group("/reports")
		{
			reports.GET("/projects", authz.Require(policy.ReportView), h.Report.ProjectReports)
			reports.GET("/users", authz.Require(policy.ReportView), h.Report.UserReports)
			reports.POST("/projects/archive", authz.Require(policy.ReportArchive), h.Report.ArchiveProjectReports)
		}
		auth.GET("/roles", authz.Require(policy.ReportView), h.Admin.ListRoles)

		users := auth.Group("/users")
		{
			users.PUT("/:id/role", authz.Require(policy.UserRole), h.Admin.UpdateUserRole)
			users.DELETE("/:id", authz.Require(policy.UserDelete), h.Admin.DeleteUser)
		}

		auth.GET("/audit/logs", authz.Require(policy.AuditView), h.Audit.GetAuditLogs)
	}
	return services
}
