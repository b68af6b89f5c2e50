package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "vnv-money-backend/internal/adapter/http"
	"vnv-money-backend/internal/adapter/middleware"
	"vnv-money-backend/internal/adapter/repository/mysql"
	"vnv-money-backend/internal/config"
	auditDomain "vnv-money-backend/internal/domain/audit"
	borrowerDomain "vnv-money-backend/internal/domain/borrower"
	budgetDomain "vnv-money-backend/internal/domain/budget"
	loanDomain "vnv-money-backend/internal/domain/loan"
	"vnv-money-backend/internal/domain/tier"
	trDomain "vnv-money-backend/internal/domain/tierrequest"
	"vnv-money-backend/internal/infrastructure/cache"
	"vnv-money-backend/internal/infrastructure/db"
	adminUC "vnv-money-backend/internal/usecase/admin"
	borrowerUC "vnv-money-backend/internal/usecase/borrower"
	budgetUC "vnv-money-backend/internal/usecase/budget"
	loanUC "vnv-money-backend/internal/usecase/loan"
	tierUC "vnv-money-backend/internal/usecase/tier"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(
		&borrowerDomain.Borrower{},
		&loanDomain.Loan{},
		&trDomain.TierRequest{},
		&budgetDomain.Budget{},
		&auditDomain.Entry{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := mysql.NewBudgetRepository(gdb).EnsureSeeded(ctx); err != nil {
		log.Fatalf("seed budget: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	rules := tier.Rules{ProgressThreshold: cfg.ProgressThreshold, DueDay: cfg.DueDay}
	tx := mysql.NewGormUoW(gdb)

	loanH := httpadp.NewLoanHandler(loanUC.NewUsecase(tx, rules))
	tierH := httpadp.NewTierHandler(tierUC.NewUsecase(tx, rules))
	budgetH := httpadp.NewBudgetHandler(budgetUC.NewUsecase(tx))
	borrowerH := httpadp.NewBorrowerHandler(borrowerUC.NewUsecase(tx))
	adminH := httpadp.NewAdminHandler(adminUC.NewUsecase(tx))
	h := httpadp.NewHandler()

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	v1.POST("/borrowers", borrowerH.Register)
	v1.GET("/borrowers/:borrower_id", borrowerH.GetBorrower)
	v1.GET("/borrowers/:borrower_id/loans", loanH.ListBorrowerLoans)

	v1.POST("/loans", loanH.CreateLoan)
	v1.GET("/loans/:loan_id", loanH.GetLoan)
	v1.POST("/loans/:loan_id/status", loanH.TransitionLoan)

	v1.POST("/tiers/requests", tierH.RequestUpgrade)
	v1.POST("/tiers/requests/:request_id/resolve", tierH.ResolveRequest)
	v1.POST("/penalties/run", tierH.RunPenalties)

	v1.GET("/budget", budgetH.GetBudget)
	v1.PUT("/budget", budgetH.SetBudgetTotal)

	v1.GET("/audit-logs", adminH.ListAuditLogs)
	v1.POST("/admin/reset", adminH.FullReset)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
