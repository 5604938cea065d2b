package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/astrahr/payroll-backend-go/internal/config"
	appHTTP "github.com/astrahr/payroll-backend-go/internal/handler/http"
	"github.com/astrahr/payroll-backend-go/internal/pkg/database"
	"github.com/astrahr/payroll-backend-go/internal/pkg/jwt"
	"github.com/astrahr/payroll-backend-go/internal/repository/postgresql"
	adhocService "github.com/astrahr/payroll-backend-go/internal/service/adhoc"
	componentService "github.com/astrahr/payroll-backend-go/internal/service/component"
	loanService "github.com/astrahr/payroll-backend-go/internal/service/loan"
	payrollService "github.com/astrahr/payroll-backend-go/internal/service/payroll"
	salaryService "github.com/astrahr/payroll-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "payroll-backend"),
	)

	txManager := postgresql.NewTxManager(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	componentRepo := postgresql.NewComponentRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	attendanceSource := postgresql.NewAttendanceSource(db)
	loanRepo := postgresql.NewLoanRepository(db)
	adhocRepo := postgresql.NewAdhocRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	componentSvc := componentService.NewComponentService(componentRepo)
	salarySvc := salaryService.NewAssignmentService(txManager, assignmentRepo, componentRepo, employeeRepo)
	loanSvc := loanService.NewLoanService(txManager, loanRepo, employeeRepo)
	adhocSvc := adhocService.NewPaymentService(adhocRepo, componentRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		txManager,
		payrollRepo,
		attendanceSource,
		assignmentRepo,
		componentRepo,
		loanRepo,
		adhocRepo,
		employeeRepo,
		logger,
	)

	componentHandler := appHTTP.NewComponentHandler(componentSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	loanHandler := appHTTP.NewLoanHandler(loanSvc)
	adhocHandler := appHTTP.NewAdhocHandler(adhocSvc)

	router := appHTTP.NewRouter(
		jwtService,
		componentHandler,
		salaryHandler,
		payrollHandler,
		loanHandler,
		adhocHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
