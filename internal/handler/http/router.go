package http

import (
	"log/slog"
	"os"

	"github.com/astrahr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/astrahr/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	componentHandler ComponentHandler,
	salaryHandler SalaryHandler,
	payrollHandler PayrollHandler,
	loanHandler LoanHandler,
	adhocHandler AdhocHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/components", func(r chi.Router) {
				r.Post("/", componentHandler.Create)
				r.Get("/", componentHandler.List)
				r.Route("/{componentID}", func(r chi.Router) {
					r.Get("/", componentHandler.Get)
					r.Put("/", componentHandler.Update)
					r.Delete("/", componentHandler.Deactivate)
				})
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Route("/salary", func(r chi.Router) {
					r.Post("/", salaryHandler.Assign)
					r.Get("/", salaryHandler.GetCurrent)
					r.Get("/history", salaryHandler.History)
				})
				r.Get("/loans", loanHandler.ListByEmployee)
				r.Get("/adhoc-payments", adhocHandler.ListByEmployee)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)
					r.Put("/", payrollHandler.UpdateSettings)
				})

				r.Route("/periods", func(r chi.Router) {
					r.Post("/", payrollHandler.CreatePeriod)
					r.Post("/generate", payrollHandler.GeneratePeriod)
					r.Route("/{periodID}", func(r chi.Router) {
						r.Get("/", payrollHandler.GetPeriod)
						r.Get("/payslips", payrollHandler.ListPayslipsByPeriod)
						r.Post("/employees/{employeeID}/calculate", payrollHandler.CalculatePayslip)
					})
				})

				r.Route("/payslips/{payslipID}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetPayslip)
					r.Post("/recalculate", payrollHandler.RecalculatePayslip)
					r.Post("/approve", payrollHandler.ApprovePayslip)
					r.Post("/pay", payrollHandler.MarkPayslipPaid)
					r.Post("/line-items", payrollHandler.AddManualLineItem)
				})
			})

			r.Route("/loans", func(r chi.Router) {
				r.Post("/", loanHandler.Create)
				r.Route("/{loanID}", func(r chi.Router) {
					r.Get("/", loanHandler.Get)
					r.Post("/approve", loanHandler.Approve)
					r.Post("/reject", loanHandler.Reject)
					r.Post("/disburse", loanHandler.Disburse)
					r.Post("/schedule", loanHandler.GenerateSchedule)
					r.Get("/schedule", loanHandler.GetSchedule)
				})
			})

			r.Route("/adhoc-payments", func(r chi.Router) {
				r.Post("/", adhocHandler.Create)
				r.Route("/{paymentID}", func(r chi.Router) {
					r.Get("/", adhocHandler.Get)
					r.Post("/cancel", adhocHandler.Cancel)
				})
			})
		})
	})

	return r
}
