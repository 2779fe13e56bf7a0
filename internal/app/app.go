package app

import (
	"scholarhub/internal/config"
	"scholarhub/internal/db"
	"scholarhub/internal/handlers"
	"scholarhub/internal/repository"
	"scholarhub/internal/routes"
	"scholarhub/internal/services"

	"github.com/gorilla/mux"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		return nil, err
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	articleRepo := repository.NewArticleRepo(conn)
	commentRepo := repository.NewCommentRepo(conn)
	tagRepo := repository.NewTagRepo(conn)

	// Сервисы
	authService := services.NewAuthService(userRepo)
	articleService := services.NewArticleService(articleRepo, userRepo, tagRepo)
	commentService := services.NewCommentService(commentRepo)
	tagService := services.NewTagService(tagRepo)

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(authService)
	articleHandler := handlers.NewArticleHandler(articleService)
	commentHandler := handlers.NewCommentHandler(commentService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, cfg, authHandler, userHandler, articleHandler, commentHandler, tagHandler)

	return router, nil
}
