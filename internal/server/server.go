package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"pandar-wallet/internal/auth"
	"pandar-wallet/internal/config"
	"pandar-wallet/internal/handler"
	"pandar-wallet/internal/service"
	"pandar-wallet/internal/store"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server
type Server struct {
	router *mux.Router
	server *http.Server
	store  *store.Store
	logger *slog.Logger
	port   string
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	st := store.NewStore()
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTExpiry)

	// Initialize services
	userService := service.NewUserService(st, tokens, cfg, logger)
	walletService := service.NewWalletService(st, logger)
	transactionService := service.NewTransactionService(st, logger)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	walletHandler := handler.NewWalletHandler(walletService)
	transactionHandler := handler.NewTransactionHandler(transactionService, cfg.PaginationDefaultLimit, cfg.PaginationMaxLimit)

	authRequired := handler.Auth(tokens, st.Users)
	mutatingLimiter := handler.NewRateLimiter(cfg.MutatingRatePerMin, cfg.IsTest())
	readLimiter := handler.NewRateLimiter(cfg.ReadRatePerMin, cfg.IsTest())

	// Setup router
	router := mux.NewRouter()

	router.Use(loggingMiddleware(logger))
	router.Use(handler.Metrics)

	// User routes
	router.Handle("/user",
		mutatingLimiter.Middleware(http.HandlerFunc(userHandler.CreateUser))).Methods("POST")

	// Wallet routes
	router.Handle("/balance",
		authRequired(readLimiter.Middleware(http.HandlerFunc(walletHandler.GetBalance)))).Methods("GET")
	router.Handle("/add_balance",
		authRequired(mutatingLimiter.Middleware(http.HandlerFunc(walletHandler.AddBalance)))).Methods("POST")
	router.Handle("/withdraw",
		authRequired(mutatingLimiter.Middleware(http.HandlerFunc(walletHandler.Withdraw)))).Methods("POST")

	// Transaction routes
	router.Handle("/transactions",
		authRequired(readLimiter.Middleware(http.HandlerFunc(transactionHandler.GetTransactions)))).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Welcome
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]string{"message": "Welcome to the Pandar Wallet API"},
		})
	}).Methods("GET")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	router.NotFoundHandler = loggingMiddleware(logger)(http.HandlerFunc(handler.NotFound))

	return &Server{
		router: router,
		store:  st,
		logger: logger,
	}, nil
}

// loggingMiddleware adds request logging
func loggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create response wrapper to capture status code
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration", time.Since(start),
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	// Get the actual port being used
	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.logger != nil {
		s.logger.Info("Starting server", "port", s.port)
	}

	// Start server in background
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Error("Server failed to start", "error", err)
			}
		}
	}()

	return s.port, nil
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("Shutting down server")
	}

	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// GetStore returns the backing store for testing purposes
func (s *Server) GetStore() *store.Store {
	return s.store
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	// Initialize logger - discard output in tests to keep runs quiet
	var logger *slog.Logger
	if cfg.IsTest() {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}

	server, err := NewServer(cfg, logger)
	if err != nil {
		return nil, "", err
	}

	// Start the server and get the actual port
	port, err := server.Start(cfg.Port)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
