package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/folio/folio/server/handlers"
	"github.com/folio/folio/server/internal/auth"
	"github.com/folio/folio/server/internal/config"
	"github.com/folio/folio/server/internal/database"
	"github.com/folio/folio/server/internal/post/handler"
	postservice "github.com/folio/folio/server/internal/post/service"
	"github.com/folio/folio/server/internal/project"
	"github.com/folio/folio/server/internal/stats"
	"github.com/folio/folio/server/internal/storage"
	"github.com/folio/folio/server/pkg/logger"
	"github.com/folio/folio/server/pkg/metrics"
	"github.com/folio/folio/server/pkg/middleware"
)

var startTime = time.Now()

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v cors_origin=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.CORS.Origin)

	r := gin.New()
	r.Use(corsMiddleware(cfg.CORS.Origin))
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and token blacklist can use it
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			rdb = nil
		} else {
			auth.SetBlacklistClient(rdb)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB; fall back to in-memory repositories when unavailable
	// so the API still serves (content then does not survive restarts).
	ctx := context.Background()
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		mongoClient, err = database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v; using in-memory stores", err)
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
			logger.Infof("Connected to MongoDB: database=%s", cfg.MongoDB.Database)
		}
	}

	var postsSvc postservice.Service
	var projectsRepo project.Repository
	if mongoClient != nil {
		db := mongoClient.Database(cfg.MongoDB.Database)
		postsSvc = postservice.NewMongoService(db.Collection("posts"))
		projectsRepo = project.NewMongoRepo(db.Collection("projects"))
	} else {
		postsSvc = postservice.NewMemoryService()
		projectsRepo = project.NewMemoryRepo()
	}

	var recorder stats.Recorder
	if rdb != nil {
		recorder = stats.NewRedisRecorder(rdb, "stats:")
	} else {
		recorder = stats.NewMemoryRecorder()
	}

	var uploads *storage.MinIOStorage
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		uploads, err = storage.NewMinIOStorage(mcfg)
		if err != nil {
			logger.Warnf("object store unavailable: %v; uploads disabled", err)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the content store backing this process is durable
	r.GET("/ready", func(c *gin.Context) {
		deps := gin.H{
			"mongodb": mongoClient != nil,
			"redis":   rdb != nil || cfg.Redis.Host == "",
			"uploads": uploads != nil,
		}
		ready := mongoClient != nil || cfg.MongoDB.URI == ""
		status := gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	})

	guard := middleware.AdminAuth(cfg.JWT.Secret)
	api := r.Group("/api")

	authSvc := auth.NewService(cfg)
	auth.NewHandler(authSvc, cfg.JWT.Secret).Register(api, guard)
	handler.RegisterPostRoutes(api, postsSvc, guard)
	project.RegisterRoutes(api, projectsRepo, guard)
	stats.RegisterRoutes(api, recorder, guard)
	handlers.RegisterUploadRoutes(api, uploads, guard)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting folio server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}

// corsMiddleware answers preflights and sets the allowed origin from config.
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if origin != "*" {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
