package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"messaging-service/internal/auth"
	"messaging-service/internal/config"
	"messaging-service/internal/db"
	"messaging-service/internal/handlers"
	"messaging-service/internal/middleware"
	"messaging-service/internal/notify"
	"messaging-service/internal/observability"
	"messaging-service/internal/presence"
	"messaging-service/internal/ws"

	"messaging-service/internal/repositories"
)

const serviceName = "messaging-service"

func main() {
	cfg := config.Load()
	ctx := context.Background()

	shutdownTracing := observability.InitTracing(ctx, serviceName, cfg.OTLPEndpoint)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	database, err := db.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	typing, err := presence.New(ctx, cfg.RedisURL, cfg.TypingTTL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer typing.Close()

	publisher := observability.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	observability.SetPublisher(publisher)
	defer publisher.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret)

	messageRepo := repositories.NewMessageRepo(database)
	reactionRepo := repositories.NewReactionRepo(database)
	notificationRepo := repositories.NewNotificationRepo(database)
	moderationRepo := repositories.NewModerationRepo(database)
	profileRepo := repositories.NewProfileRepo(database)

	hub := ws.NewHub()
	dispatcher := notify.NewDispatcher(notificationRepo, hub, serviceName)

	messageHandler := handlers.NewMessageHandler(messageRepo, reactionRepo, profileRepo, moderationRepo, typing, dispatcher, hub)
	conversationHandler := handlers.NewConversationHandler(messageRepo, profileRepo, typing)
	reactionHandler := handlers.NewReactionHandler(reactionRepo, messageRepo, hub)
	presenceHandler := handlers.NewPresenceHandler(typing, hub)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	moderationHandler := handlers.NewModerationHandler(moderationRepo, messageRepo)
	threadWS := ws.NewThreadWebSocketHandler(hub, tokens)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware(serviceName))

	handlers.RegisterHealthRoutes(router, map[string]handlers.Pinger{
		"postgres": dbPinger{db: database},
		"redis":    typing,
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.AuthMiddleware(tokens)

	router.POST("/messages", authMiddleware, messageHandler.SendMessage)
	router.PATCH("/messages/:message_id", authMiddleware, messageHandler.EditMessage)
	router.DELETE("/messages/:message_id", authMiddleware, messageHandler.DeleteMessage)
	router.POST("/messages/:message_id/reactions", authMiddleware, reactionHandler.ToggleReaction)

	router.GET("/threads/:counterpart_id", authMiddleware, messageHandler.GetThread)
	router.POST("/threads/:counterpart_id/read", authMiddleware, messageHandler.MarkThreadRead)

	router.GET("/conversations", authMiddleware, conversationHandler.ListConversations)

	router.POST("/typing", authMiddleware, presenceHandler.IndicateTyping)
	router.DELETE("/typing/:counterpart_id", authMiddleware, presenceHandler.StopTyping)

	router.GET("/notifications", authMiddleware, notificationHandler.ListNotifications)
	router.POST("/notifications/:id/read", authMiddleware, notificationHandler.MarkNotificationRead)

	router.POST("/reports", authMiddleware, moderationHandler.CreateReport)
	router.POST("/reports/:id/review", authMiddleware, moderationHandler.ReviewReport)
	router.POST("/blocks", authMiddleware, moderationHandler.CreateBlock)

	router.GET("/ws/threads/:counterpart_id", threadWS.Handle)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

type dbPinger struct {
	db *sqlx.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
