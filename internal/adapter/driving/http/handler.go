// Package httphandler is the HTTP driving adapter serving the records REST API.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mehtaportfolio/data-backend/internal/application"
	"github.com/mehtaportfolio/data-backend/internal/domain/model"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

// catchAllPattern matches every request no other pattern claims, for any method.
const catchAllPattern = "/"

// Stores holds the record store behind each resource. A nil Dummy leaves the
// dummy-table routes unmounted.
type Stores struct {
	BankAccounts      driven.RecordStore[model.BankAccount]
	CreditCards       driven.RecordStore[model.CreditCard]
	GeneralDocuments  driven.RecordStore[model.GeneralDocument]
	InsurancePolicies driven.RecordStore[model.InsurancePolicy]
	Deposits          driven.RecordStore[model.Deposit]
	Websites          driven.RecordStore[model.Website]
	Dummy             driven.RecordStore[model.DummyRow]
}

// Options controls the middleware stack built by NewServeMux.
type Options struct {
	// CORSOrigin is the single browser origin allowed to call the API.
	CORSOrigin string
	// AuthRequired enables the caller identity check on every /api route.
	AuthRequired bool
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	routes       []route
	dashboardSvc *application.DashboardService
	statusSvc    *application.ServiceStatusService
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	stores Stores,
	dashboardSvc *application.DashboardService,
	statusSvc *application.ServiceStatusService,
	logger *slog.Logger,
) *Handler {
	routes := []route{
		&Resource[model.BankAccount]{
			Path: "bank-accounts", Singular: "bank account", Plural: "bank accounts",
			Store: stores.BankAccounts,
		},
		&Resource[model.CreditCard]{
			Path: "credit-cards", Singular: "credit card", Plural: "credit cards",
			Store: stores.CreditCards,
		},
		&Resource[model.GeneralDocument]{
			Path: "general-documents", Singular: "general document", Plural: "general documents",
			Store: stores.GeneralDocuments,
		},
		&Resource[model.InsurancePolicy]{
			Path: "insurance-policies", Singular: "insurance policy", Plural: "insurance policies",
			Store: stores.InsurancePolicies,
		},
		&Resource[model.Deposit]{
			Path: "deposits", Singular: "deposit", Plural: "deposits",
			DeleteReturnsRecord: true,
			Store:               stores.Deposits,
		},
		&Resource[model.Website]{
			Path: "websites", Singular: "website", Plural: "websites",
			Store: stores.Websites,
		},
	}

	if stores.Dummy != nil {
		routes = append(routes, &Resource[model.DummyRow]{
			Path: "dummy-table", Singular: "entry", Plural: "dummy table entries",
			DeleteReturnsRecord: true,
			Store:               stores.Dummy,
			decodeCreate:        decodeDummyCreate,
			decodeUpdate:        decodeDummyUpdate,
		})
	}

	return &Handler{
		routes:       routes,
		dashboardSvc: dashboardSvc,
		statusSvc:    statusSvc,
		logger:       logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with CORS, logging, recovery and, when enabled, the auth gate.
func NewServeMux(h *Handler, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	for _, rt := range h.routes {
		rt.register(mux, h.logger)
	}
	mux.HandleFunc("GET /api/dashboard", h.Dashboard)
	mux.HandleFunc("GET /api/service/status", h.ServiceStatus)
	mux.HandleFunc("POST /api/service/restart", h.RestartService)

	mux.HandleFunc(catchAllPattern, h.NotFound)

	var wrapped http.Handler = mux
	if opts.AuthRequired {
		wrapped = authMiddleware(mux, wrapped)
	}
	// Recovery innermost so panics are caught before logging.
	wrapped = recoveryMiddleware(h.logger, wrapped)
	wrapped = loggingMiddleware(h.logger, wrapped)
	wrapped = corsMiddleware(opts.CORSOrigin, wrapped)

	return wrapped
}

// Health reports that the process is serving requests.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Server is running"})
}

// NotFound answers every unmatched route.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

// Dashboard returns the merged lists of every resource except deposits.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboardSvc.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard", "error", err)
		var de *application.DashboardError
		if errors.As(err, &de) {
			writeError(w, http.StatusInternalServerError, "Failed to fetch some dashboard data: "+de.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeData(w, http.StatusOK, d)
}

// ServiceStatus reports whether the latest deploy of the hosted service is live.
func (h *Handler) ServiceStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.statusSvc.Status(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch service status", "error", err)
		writeError(w, http.StatusInternalServerError, deployErrorMessage(err, "Failed to fetch deployment status from Render"))
		return
	}

	h.logger.Info("latest deploy status", "status", status.Status)

	resp := serviceStatusResponse{
		Success:   true,
		IsRunning: status.IsRunning(),
		Message:   "Service is not running",
	}
	if status.Status != "" {
		resp.Status = &status.Status
	}
	if resp.IsRunning {
		resp.Message = "Service is running"
	}

	writeJSON(w, http.StatusOK, resp)
}

// RestartService asks the hosting provider to restart the service.
func (h *Handler) RestartService(w http.ResponseWriter, r *http.Request) {
	if err := h.statusSvc.Restart(r.Context()); err != nil {
		h.logger.Error("failed to restart service", "error", err)
		writeError(w, http.StatusInternalServerError, deployErrorMessage(err, "Failed to restart service"))
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Service restart initiated"})
}

func deployErrorMessage(err error, upstream string) string {
	if errors.Is(err, driven.ErrDeployNotConfigured) {
		return "Render API credentials not configured"
	}
	return upstream
}
