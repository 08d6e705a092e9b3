package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Handler        *Handler
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/login", cfg.Handler.Login)

		api.POST("/quiz", cfg.Handler.SaveQuiz)
		api.GET("/quiz/:userId", cfg.Handler.GetQuiz)

		api.GET("/chat/messages/:userId", cfg.Handler.ListConversation)
		api.POST("/chat/message", cfg.Handler.SubmitUtterance)
		api.GET("/chat/stream/:userId", cfg.Handler.StreamConversation)

		api.GET("/items/:userId", cfg.Handler.ListItems)
		api.POST("/items/:userId", cfg.Handler.SaveTurnAsItem)
		api.PATCH("/items/:userId/:itemId", cfg.Handler.UpdateItem)
		api.DELETE("/items/:userId/:itemId", cfg.Handler.DeleteItem)

		api.GET("/progress/:userId", cfg.Handler.GetProgress)
	}

	return router
}
