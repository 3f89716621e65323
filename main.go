package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/galfin/src/config"
	"github.com/username/galfin/src/database"
	"github.com/username/galfin/src/handlers"
	"github.com/username/galfin/src/logger"
	"github.com/username/galfin/src/processors"
	"github.com/username/galfin/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowedOrigins := map[string]bool{
			"http://localhost:3000": true,
		}

		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With, If-None-Match")
			w.Header().Set("Access-Control-Expose-Headers", "ETag")
		} else if origin == "" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}

		if r.Method == "OPTIONS" {
			logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)
	logger.L.Info("Galfin backend server starting...")

	logger.L.Info("Loading account mapping...", "path", config.Cfg.AccountMappingPath)
	accountMapping, err := processors.LoadAccountMapping(config.Cfg.AccountMappingPath)
	if err != nil {
		logger.L.Error("Failed to load account mapping", "path", config.Cfg.AccountMappingPath, "error", err)
		stdlog.Fatalf("Failed to load account mapping: %v", err)
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Initializing report cache...")
	reportCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)
	logger.L.Info("Report cache initialized.")

	logger.L.Info("Initializing services and handlers...")
	statementProcessor := processors.NewStatementProcessor(config.Cfg.DefaultInstitution, accountMapping)

	importService := services.NewImportService(
		statementProcessor,
		config.Cfg.RulesPath,
		config.Cfg.DefaultInstitution,
		config.Cfg.DefaultCurrency,
		reportCache,
	)
	transactionService := services.NewTransactionService(config.Cfg.RulesPath, reportCache)
	reportService := services.NewReportService(reportCache)
	accountService := services.NewAccountService()
	parameterService := services.NewParameterService()

	uploadHandler := handlers.NewUploadHandler(importService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	ruleHandler := handlers.NewRuleHandler(config.Cfg.RulesPath)
	accountHandler := handlers.NewAccountHandler(accountService)
	parameterHandler := handlers.NewParameterHandler(parameterService)
	reportHandler := handlers.NewReportHandler(reportService)

	logger.L.Info("Configuring routes...")
	rootMux := http.NewServeMux()
	apiRouter := http.NewServeMux()

	apiRouter.HandleFunc("POST /api/import", uploadHandler.HandleImport)

	apiRouter.HandleFunc("GET /api/transactions", transactionHandler.HandleList)
	apiRouter.HandleFunc("GET /api/transactions/{id}", transactionHandler.HandleGet)
	apiRouter.HandleFunc("PUT /api/transactions/{id}/overrides", transactionHandler.HandleUpdateOverrides)
	apiRouter.HandleFunc("DELETE /api/transactions/{id}", transactionHandler.HandleDelete)
	apiRouter.HandleFunc("POST /api/transactions/recategorize", transactionHandler.HandleRecategorize)
	apiRouter.HandleFunc("POST /api/transactions/reclean", transactionHandler.HandleReclean)

	apiRouter.HandleFunc("GET /api/rules", ruleHandler.HandleList)
	apiRouter.HandleFunc("POST /api/rules", ruleHandler.HandleAppend)
	apiRouter.HandleFunc("PUT /api/rules", ruleHandler.HandleReplace)

	apiRouter.HandleFunc("GET /api/accounts", accountHandler.HandleList)
	apiRouter.HandleFunc("GET /api/accounts/{id}", accountHandler.HandleGet)
	apiRouter.HandleFunc("PUT /api/accounts", accountHandler.HandleUpsert)
	apiRouter.HandleFunc("DELETE /api/accounts/{id}", accountHandler.HandleDelete)

	apiRouter.HandleFunc("GET /api/parameters", parameterHandler.HandleList)
	apiRouter.HandleFunc("PUT /api/parameters", parameterHandler.HandleUpsert)

	apiRouter.HandleFunc("GET /api/reports/expenses-by-category", reportHandler.HandleExpensesByCategory)
	apiRouter.HandleFunc("GET /api/reports/income-vs-expense", reportHandler.HandleIncomeVsExpenseByMonth)

	rootMux.Handle("/api/", apiRouter)

	rootMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" && r.Method == http.MethodGet {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "GALFIN Backend is running"})
		} else {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				logger.L.Warn("Root level path not found", "method", r.Method, "path", r.URL.Path)
				http.NotFound(w, r)
			}
		}
	})

	logger.L.Info("Applying global middleware...")
	finalHandler := enableCORS(rateLimitMiddleware(rootMux))

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      finalHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L.Error("Failed to start server", "error", err)
		stdlog.Fatalf("Failed to start server: %v", err)
	} else if err == http.ErrServerClosed {
		logger.L.Info("Server stopped gracefully.")
	}
}
