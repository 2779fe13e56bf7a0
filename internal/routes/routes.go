package routes

import (
	"net/http"

	"scholarhub/internal/config"
	"scholarhub/internal/handlers"
	"scholarhub/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	articleHandler *handlers.ArticleHandler,
	commentHandler *handlers.CommentHandler,
	tagHandler *handlers.TagHandler,
) {
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	// --- Публичные маршруты ---
	router.HandleFunc("/users/auth/token/register", authHandler.Register).Methods(http.MethodPost)
	router.HandleFunc("/users/auth/token/login", authHandler.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/auth/token/refresh/", authHandler.Refresh).Methods(http.MethodPost)

	// --- Защищённые JWT ---
	protected := router.PathPrefix("").Subrouter()
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))

	protected.HandleFunc("/users/me/", userHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/users/", userHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}/", userHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/users/{id:[0-9]+}/", userHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/users/{id:[0-9]+}/", userHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/articles/", articleHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/articles/", articleHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/articles/export/csv/", articleHandler.ExportCSV).Methods(http.MethodGet)
	protected.HandleFunc("/articles/{id:[0-9]+}/", articleHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/articles/{id:[0-9]+}/", articleHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/articles/{id:[0-9]+}/", articleHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/comments/", commentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/comments/", commentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/comments/{id:[0-9]+}/", commentHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/comments/{id:[0-9]+}/", commentHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/comments/{id:[0-9]+}/", commentHandler.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/tags/", tagHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/tags/", tagHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/tags/{id:[0-9]+}/", tagHandler.GetByID).Methods(http.MethodGet)
	protected.HandleFunc("/tags/{id:[0-9]+}/", tagHandler.Update).Methods(http.MethodPut, http.MethodPatch)
	protected.HandleFunc("/tags/{id:[0-9]+}/", tagHandler.Delete).Methods(http.MethodDelete)
}
