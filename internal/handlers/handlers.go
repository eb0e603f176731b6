package handlers

import (
	"Checklister/internal/config"
	"Checklister/internal/middleware"
	"Checklister/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	checklistService *service.ChecklistService,
	uploadService *service.UploadService,
	userService *service.UserService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	// фронтенд ходит с любого origin, авторизации нет
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	// Handlers
	checklistHandler := NewChecklistHandler(checklistService, logger)
	uploadHandler := NewUploadHandler(uploadService, logger)
	userHandler := NewUserHandler(userService, logger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Checklist Builder API"})
	})

	// Checklist routes
	r.Route("/checklists", func(r chi.Router) {
		r.Get("/", checklistHandler.List)
		r.Post("/", checklistHandler.Create)
		r.Get("/public/{public_id}", checklistHandler.GetPublic)
		r.Get("/{id}", checklistHandler.Get)
		r.Put("/{id}", checklistHandler.Update)
		r.Delete("/{id}", checklistHandler.Delete)
		r.Post("/{id}/clone", checklistHandler.Clone)
		r.Post("/{id}/make_public", checklistHandler.MakePublic)
	})
	r.Get("/public/{public_id}", checklistHandler.GetPublic)

	// Upload routes
	r.Post("/items/{item_id}/upload", uploadHandler.Upload)
	r.Delete("/uploads/{upload_id}", uploadHandler.Delete)
	r.Get("/public_uploads/{upload_id}", uploadHandler.ServePublic)

	// User routes
	r.Post("/users", userHandler.Login)

	return &Handler{Router: r}
}
