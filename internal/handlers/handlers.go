package handlers

import (
	"Fridgella/internal/auth"
	"Fridgella/internal/config"
	"Fridgella/internal/middleware"
	"Fridgella/internal/service"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Services сервисы, которые обслуживает HTTP-слой
type Services struct {
	Users     *service.UserService
	Items     *service.ItemService
	Bills     *service.BillService
	Analytics *service.AnalyticsService
}

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	tokens *auth.TokenManager,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept-Encoding", "Content-Encoding"},
		MaxAge:         300,
	}))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(tokens))

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger)
	itemHandler := NewItemHandler(svc.Items, logger)
	billHandler := NewBillHandler(svc.Bills, logger)
	analyticsHandler := NewAnalyticsHandler(svc.Analytics, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", noListing(http.FileServer(http.Dir(config.UploadDir)))))

	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.Post("/auth/register", userHandler.Register)
		r.Post("/auth/login", userHandler.Login)
		r.Post("/auth/forgot-password", userHandler.ForgotPassword)
		r.Post("/auth/reset-password", userHandler.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/auth/me", userHandler.Me)
			r.Put("/auth/update", userHandler.UpdateProfile)
			r.Get("/users/profile", userHandler.Me)
			r.Put("/users/profile", userHandler.UpdateProfile)

			r.Route("/bills", func(r chi.Router) {
				r.Post("/", billHandler.Create)
				r.Get("/", billHandler.List)
				r.Delete("/{id}", billHandler.Delete)
			})

			r.Route("/items", func(r chi.Router) {
				r.Post("/manual", itemHandler.CreateManual)
				r.Post("/bill", itemHandler.ImportBill)
				r.Get("/", itemHandler.List)
				r.Get("/{id}", itemHandler.Get)
				r.Put("/{id}", itemHandler.Update)
				r.Delete("/{id}", itemHandler.Delete)
			})

			r.Get("/analytics", analyticsHandler.Summary)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return &Handler{Router: r}
}

// noListing не отдаёт содержимое каталогов
func noListing(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
