package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/carebridge/care-platform/docs"
	"github.com/carebridge/care-platform/internal/api/handler"
	"github.com/carebridge/care-platform/internal/api/middleware"
	"github.com/carebridge/care-platform/internal/core/domain"
	"github.com/carebridge/care-platform/internal/core/ports"
)

// Deps bundles everything the router needs. Limiter and Audit are optional;
// nil disables the corresponding middleware.
type Deps struct {
	Verifier    ports.TokenVerifier
	Identity    ports.IdentityProvider
	Tokens      ports.TokenGateway
	Profiles    ports.ProfileService
	Invitations ports.InvitationService
	Departments ports.DepartmentService
	Patients    ports.PatientService
	Allowlist   ports.AllowlistService

	Limiter middleware.Allower
	Audit   middleware.AuditSink

	Mongo *mongo.Database
	Redis *redis.Client
	Log   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("careplatform"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Profiles, deps.Tokens, deps.Identity)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	invitationHandler := handler.NewInvitationHandler(deps.Invitations)
	departmentHandler := handler.NewDepartmentHandler(deps.Departments)
	patientHandler := handler.NewPatientHandler(deps.Patients)
	allowlistHandler := handler.NewAllowlistHandler(deps.Allowlist)

	authMW := middleware.Auth(deps.Verifier)
	founderMW := middleware.RequireRoleAtLeast(domain.RoleFounder)
	cofounderMW := middleware.RequireRoleAtLeast(domain.RoleCofounder)
	staffMW := middleware.RequireRoleAtLeast(domain.RoleStaff)

	v1 := e.Group("/api/v1")
	if deps.Audit != nil {
		v1.Use(middleware.Audit(deps.Audit))
	}

	// --- Auth (public) ---
	auth := v1.Group("/auth")
	if deps.Limiter != nil {
		auth.Use(middleware.RateLimit(deps.Limiter, "auth"))
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/password-reset", authHandler.PasswordReset)
	auth.POST("/resend-verification", authHandler.ResendVerification, authMW)

	// --- Users ---
	users := v1.Group("/users", authMW)
	users.GET("/me", profileHandler.Me)
	users.PUT("/:uid/role", profileHandler.AssignRole, cofounderMW)

	// --- Invitations ---
	invitations := v1.Group("/invitations", authMW)
	invitations.POST("", invitationHandler.Create, cofounderMW)
	invitations.POST("/accept", invitationHandler.Accept)

	// --- Departments ---
	departments := v1.Group("/departments", authMW)
	departments.POST("", departmentHandler.Create, cofounderMW)
	departments.GET("", departmentHandler.List)
	departments.GET("/:id", departmentHandler.Get)
	departments.PATCH("/:id", departmentHandler.Update, cofounderMW)
	departments.DELETE("/:id", departmentHandler.Delete, founderMW)
	// Roster and case-number authorization is department-scoped and enforced
	// in the service (global cofounder or department admin).
	departments.POST("/:id/members", departmentHandler.AddMember)
	departments.GET("/:id/members", departmentHandler.ListMembers, staffMW)
	departments.PATCH("/:id/members/:uid", departmentHandler.UpdateMemberRole)
	departments.DELETE("/:id/members/:uid", departmentHandler.RemoveMember)
	departments.POST("/:id/case-number", departmentHandler.NextCaseNumber)

	// --- Patients (self-service) ---
	patients := v1.Group("/patients", authMW)
	patients.PUT("/me", patientHandler.Upsert)
	patients.GET("/me", patientHandler.Get)
	patients.PATCH("/me", patientHandler.Patch)

	// --- Allowlist ---
	allowlist := v1.Group("/allowlist", authMW, founderMW)
	allowlist.GET("", allowlistHandler.List)
	allowlist.POST("", allowlistHandler.Add)
	allowlist.DELETE("/:id", allowlistHandler.Remove)

	// --- Observability and docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
