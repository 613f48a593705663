package rest

import (
	"log/slog"
	"net/http"
	"net/http/cookiejar"

	"github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/account"
	"github.com/hrapp/hr-management/internal/auth"
	"github.com/hrapp/hr-management/internal/core/events"
	"github.com/hrapp/hr-management/internal/department"
	"github.com/hrapp/hr-management/internal/employee"
	"github.com/hrapp/hr-management/internal/notification"
	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/store"
	"github.com/hrapp/hr-management/internal/transport"
	"github.com/hrapp/hr-management/internal/workflow"
	pkglogger "github.com/hrapp/hr-management/pkg/logger"
)

// Routes builds the ordered dispatch table. Order is load-bearing: literal
// paths are registered before their id-pattern shadows, and the workflow id
// pattern before the broader literal list route, mirroring first-match-wins
// evaluation.
func Routes(accounts *account.Handler, departments *department.Handler, employees *employee.Handler, workflows *workflow.Handler) []transport.Route {
	return []transport.Route{
		// account auth flows
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/authenticate"), Handler: accounts.Authenticate},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/refresh-token"), Handler: accounts.RefreshToken},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/revoke-token"), Handler: accounts.RevokeToken},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/register"), Handler: accounts.Register},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/verify-email"), Handler: accounts.VerifyEmail},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/forgot-password"), Handler: accounts.ForgotPassword},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/validate-reset-token"), Handler: accounts.ValidateResetToken},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts/reset-password"), Handler: accounts.ResetPassword},

		// account CRUD
		{Method: http.MethodGet, Match: transport.Suffix("/accounts"), Handler: accounts.List},
		{Method: http.MethodGet, Match: transport.IDPattern("/accounts"), Handler: accounts.GetByID},
		{Method: http.MethodPost, Match: transport.Suffix("/accounts"), Handler: accounts.Create},
		{Method: http.MethodPut, Match: transport.IDPattern("/accounts"), Handler: accounts.Update},
		{Method: http.MethodDelete, Match: transport.IDPattern("/accounts"), Handler: accounts.Delete},

		// departments
		{Method: http.MethodPost, Match: transport.Suffix("/departments"), Handler: departments.Create},
		{Method: http.MethodGet, Match: transport.Suffix("/departments"), Handler: departments.List},
		{Method: http.MethodPut, Match: transport.IDPattern("/departments"), Handler: departments.Update},
		{Method: http.MethodGet, Match: transport.IDPattern("/departments"), Handler: departments.GetByID},
		{Method: http.MethodDelete, Match: transport.IDPattern("/departments"), Handler: departments.Delete},

		// employees
		{Method: http.MethodPost, Match: transport.Suffix("/employees"), Handler: employees.Create},
		{Method: http.MethodGet, Match: transport.Suffix("/employees"), Handler: employees.List},
		{Method: http.MethodGet, Match: transport.IDPattern("/employees"), Handler: employees.GetByID},
		{Method: http.MethodPut, Match: transport.IDPattern("/employees"), Handler: employees.Update},
		{Method: http.MethodDelete, Match: transport.IDPattern("/employees"), Handler: employees.Delete},
		{Method: http.MethodPatch, Match: transport.IDPattern("/employees"), Handler: employees.Transfer},

		// workflows
		{Method: http.MethodGet, Match: transport.IDPattern("/api/workflows"), Handler: workflows.GetByID},
		{Method: http.MethodGet, Match: transport.Suffix("/api/workflows"), Handler: workflows.List},
		{Method: http.MethodGet, Match: transport.IDPattern("/api/workflows/employee"), Handler: workflows.GetByEmployeeID},
		{Method: http.MethodPost, Match: transport.Suffix("/api/workflows"), Handler: workflows.Create},
		{Method: http.MethodPut, Match: transport.IDPattern("/api/workflows"), Handler: workflows.Update},
		{Method: http.MethodDelete, Match: transport.IDPattern("/api/workflows"), Handler: workflows.Delete},
	}
}

// Simulator bundles the assembled backend with the services behind it, for
// the CLI and tests that need direct access beside the wire surface.
type Simulator struct {
	Transport   *transport.Backend
	Store       *store.Store
	Tokens      *auth.TokenService
	Accounts    *account.Service
	Departments *department.Service
	Employees   *employee.Service
	Workflows   *workflow.Service
}

// NewSimulator wires storage, store, token service, event bus, mailer,
// services and handlers into a ready RoundTripper. next is the transport for
// pass-through traffic; nil means http.DefaultTransport.
func NewSimulator(cfg *internal.Config, backend storage.Backend, next http.RoundTripper, logger *slog.Logger) (*Simulator, error) {
	if logger == nil {
		logger = pkglogger.LoggerWrapper()
	}

	entityStore, err := store.Open(backend, logger)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenService(entityStore, cfg.Security.JWTSecret,
		cfg.Security.AccessTokenDuration, cfg.Security.RefreshTokenDuration, logger)

	bus := events.NewEventBus(logger)
	notification.NewMailer(bus, cfg.Simulator.Origin, logger)

	accountService := account.NewService(entityStore, tokens, bus,
		cfg.Security.BCryptCost, cfg.Security.ResetTokenDuration, logger)
	departmentService := department.NewService(entityStore, tokens, logger)
	employeeService := employee.NewService(entityStore, tokens, logger)
	workflowService := workflow.NewService(entityStore, logger)

	routes := Routes(
		account.NewHandler(accountService, cfg.Security.RefreshTokenDuration),
		department.NewHandler(departmentService),
		employee.NewHandler(employeeService),
		workflow.NewHandler(workflowService),
	)

	dispatcher := transport.NewDispatcher(routes)
	backendTransport := transport.NewBackend(dispatcher, entityStore, cfg.Simulator.Latency, next, logger)

	return &Simulator{
		Transport:   backendTransport,
		Store:       entityStore,
		Tokens:      tokens,
		Accounts:    accountService,
		Departments: departmentService,
		Employees:   employeeService,
		Workflows:   workflowService,
	}, nil
}

// Client returns an http.Client whose transport is the simulated backend,
// with a cookie jar so the refresh token side channel round-trips.
func (s *Simulator) Client() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &http.Client{Transport: s.Transport, Jar: jar}, nil
}
