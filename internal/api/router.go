package api

import (
	"debitcard-backend/config"
	_ "debitcard-backend/docs"
	"debitcard-backend/internal/api/v1/auth"
	"debitcard-backend/internal/api/v1/debitcard"
	"debitcard-backend/internal/api/v1/debitcardtransaction"
	userRoutes "debitcard-backend/internal/api/v1/user"
	"debitcard-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the HTTP surface. Database and Redis connections are
// expected to be established by the caller.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	// cors.New panics without any allowed origin.
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth.RegisterRoutes(api)

		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			debitcard.RegisterRoutes(authorized)
			debitcardtransaction.RegisterRoutes(authorized)
		}
	}

	return router
}
