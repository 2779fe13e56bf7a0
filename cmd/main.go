package main

import (
	"net/http"

	_ "scholarhub/docs"
	"scholarhub/internal/app"
	"scholarhub/internal/config"
	"scholarhub/internal/logger"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title ScholarHub API
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @version 1.0
// @description Каталог научных статей: пользователи, статьи, комментарии, теги.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	logger.InitLogger()
	defer logger.Log.Sync()

	if err != nil {
		logger.Log.Fatal("Ошибка загрузки конфига", zap.Error(err))
	}

	warnings, err := cfg.Validate()
	for _, warn := range warnings {
		logger.Log.Warn("Конфигурация", zap.String("warning", warn))
	}
	if err != nil {
		logger.Log.Fatal("Невалидная конфигурация", zap.Error(err))
	}

	router, err := app.InitApp(cfg)
	if err != nil {
		logger.Log.Fatal("Ошибка инициализации приложения", zap.Error(err))
	}

	logger.Log.Info("Сервер запущен", zap.String("port", cfg.Port), zap.String("dsn", cfg.GetDSNSafe()))

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
	})

	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	if err := http.ListenAndServe(":"+cfg.Port, corsMiddleware.Handler(router)); err != nil {
		logger.Log.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
