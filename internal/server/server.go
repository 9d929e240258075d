package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"lilypay/internal/auth"
	"lilypay/internal/cart"
	"lilypay/internal/catalog"
	"lilypay/internal/database"
	"lilypay/internal/logger"
	"lilypay/internal/order"
	"lilypay/internal/report"
)

// Server wires the POS services to their HTTP surface.
type Server struct {
	auth    *auth.Service
	tokens  *auth.TokenManager
	catalog *catalog.Service
	carts   *cart.Registry
	orders  *order.Service
	reports *report.Service
	db      *database.DB
	logger  *logger.Logger
}

// New creates the HTTP server facade over the POS services.
func New(
	authService *auth.Service,
	tokens *auth.TokenManager,
	catalogService *catalog.Service,
	carts *cart.Registry,
	orderService *order.Service,
	reportService *report.Service,
	db *database.DB,
	log *logger.Logger,
) *Server {
	return &Server{
		auth:    authService,
		tokens:  tokens,
		catalog: catalogService,
		carts:   carts,
		orders:  orderService,
		reports: reportService,
		db:      db,
		logger:  log,
	}
}

// Routes builds the router. Everything under /api except /api/login
// requires a session token; /api/admin additionally requires the admin
// role.
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.withLogging)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.tokens.Middleware)

	// Catalog
	authed.HandleFunc("/catalog/categories", s.handleListCategories).Methods(http.MethodGet)
	authed.HandleFunc("/catalog/subcategories", s.handleListSubcategories).Methods(http.MethodGet)
	authed.HandleFunc("/catalog/items", s.handleListItems).Methods(http.MethodGet)
	authed.HandleFunc("/catalog/menu", s.handleMenuDetails).Methods(http.MethodGet)

	// Cart
	authed.HandleFunc("/cart", s.handleViewCart).Methods(http.MethodGet)
	authed.HandleFunc("/cart", s.handleClearCart).Methods(http.MethodDelete)
	authed.HandleFunc("/cart/items", s.handleAddItem).Methods(http.MethodPost)
	authed.HandleFunc("/cart/items/{itemID:[0-9]+}", s.handleSetQuantity).Methods(http.MethodPut)
	authed.HandleFunc("/cart/items/{itemID:[0-9]+}", s.handleRemoveLine).Methods(http.MethodDelete)
	authed.HandleFunc("/cart/context", s.handleSetContext).Methods(http.MethodPut)
	authed.HandleFunc("/cart/payment", s.handleSetTendered).Methods(http.MethodPut)

	// Orders and reports
	authed.HandleFunc("/orders", s.handleCommitOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders/recent", s.handleRecentOrders).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{number}", s.handleGetOrder).Methods(http.MethodGet)
	authed.HandleFunc("/reports/daily-sales", s.handleDailySales).Methods(http.MethodGet)

	// Admin-only catalog and user management
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/categories", s.handleCreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/items", s.handleCreateFoodItem).Methods(http.MethodPost)
	admin.HandleFunc("/items/{itemID:[0-9]+}/availability", s.handleSetAvailability).Methods(http.MethodPut)
	admin.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, "unhealthy", map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeJSON(w, http.StatusOK, "ok", map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// withLogging logs every request with its duration and status code.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r.Header.Set("X-Request-ID", requestID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func requestID(r *http.Request) string {
	return r.Header.Get("X-Request-ID")
}
