package main

import (
	"fmt"
	"os"

	"github.com/ataliba/contratos-service/internal/auth"
	"github.com/ataliba/contratos-service/internal/config"
	"github.com/ataliba/contratos-service/internal/db"
	"github.com/ataliba/contratos-service/internal/excel"
	httphandler "github.com/ataliba/contratos-service/internal/http"
	"github.com/ataliba/contratos-service/internal/http/middleware"
	"github.com/ataliba/contratos-service/internal/identity"
	"github.com/ataliba/contratos-service/internal/logger"
	"github.com/ataliba/contratos-service/internal/pdf"
	"github.com/ataliba/contratos-service/internal/repository"
	"github.com/ataliba/contratos-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	agreementRepo := repository.NewAgreementRepository(database)
	reportRepo := repository.NewReportRepository(database)

	agreementService := service.NewAgreementService(agreementRepo, excel.NewGenerator())
	verifier := identity.NewTokenVerifier(cfg.Auth.SignatureSecret, cfg.Auth.SignatureMaxAge)
	reportService := service.NewReportService(agreementRepo, reportRepo, agreementService, pdf.NewGenerator(), verifier)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	handler := httphandler.NewHandler(agreementService, reportService, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting contratos service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
