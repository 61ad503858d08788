package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	_ "github.com/maildeck/mailsift/docs"
	"github.com/maildeck/mailsift/internal/config"
	"github.com/maildeck/mailsift/internal/content"
	"github.com/maildeck/mailsift/internal/controllers"
	"github.com/maildeck/mailsift/internal/db"
	"github.com/maildeck/mailsift/internal/ingest"
	"github.com/maildeck/mailsift/internal/lang"
	"github.com/maildeck/mailsift/internal/metrics"
	"github.com/maildeck/mailsift/internal/middleware"
	"github.com/maildeck/mailsift/internal/repository"
	"github.com/maildeck/mailsift/internal/segment"
	"github.com/maildeck/mailsift/internal/service"
	"github.com/maildeck/mailsift/internal/thread"
)

// Package main MailSift API
//
// @title           MailSift API
// @version         1.0
// @description     Service for segmenting and sanitizing email message content
// @BasePath        /
func main() {
	cfg := config.MustLoad(context.Background())

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	})

	baseEntry := logrus.NewEntry(log).WithFields(logrus.Fields{
		"service": "mailsift",
	})

	if lvl, err := logrus.ParseLevel(cfg.Logger.Level); err == nil {
		log.SetLevel(lvl)
	}

	pool, err := db.New(context.Background(), cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()
	timeoutPool := &db.TimeoutPool{
		Pool:         pool,
		QueryTimeout: cfg.Database.QueryTimeout,
	}

	ld := lang.NewDetector()

	var msgRepo repository.MessageRepository = repository.NewPostgresMessageRepo(timeoutPool)

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		// Best-effort ping on startup
		pingCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			baseEntry.WithError(err).Warn("redis ping failed; proceeding without cache")
		} else {
			baseEntry.WithField("addr", cfg.Redis.Addr).Info("redis connected")
			msgRepo = repository.NewCacheMessageRepo(msgRepo, rdb, cfg.Redis.Prefix, cfg.Redis.TTL)
		}
		cancel()
	}

	processor := content.NewProcessor(content.Config{
		Segmenter: segment.Config{
			TreeSizeLimit:  cfg.Pipeline.TreeSizeLimit,
			MinCleanLength: cfg.Pipeline.MinCleanLength,
		},
		SimilarityThreshold: cfg.Pipeline.SimilarityThreshold,
		SimilarityMinLength: cfg.Pipeline.SimilarityMinLength,
	}, baseEntry)

	pipeline := service.NewPipeline(
		ingest.NewEnmimeExtractor(),
		processor,
		ld,
		msgRepo,
		cfg.Pipeline.TreeSizeLimit,
		baseEntry,
	)
	reconstructor := thread.NewReconstructor(processor)

	baseEntry.WithFields(logrus.Fields{
		"http_addr":        cfg.HTTP.Host,
		"req_timeout":      cfg.HTTP.RequestTimeout.String(),
		"shutdown_timeout": cfg.HTTP.ShutdownTimeout.String(),
		"db_query_timeout": cfg.Database.QueryTimeout.String(),
		"tree_size_limit":  cfg.Pipeline.TreeSizeLimit,
	}).Info("config loaded")

	r := gin.New()
	p := ginprometheus.NewPrometheus("mailsift")
	p.Use(r)
	metrics.RegisterMetrics()
	r.Use(middleware.RecoveryMiddleware(log))
	r.Use(middleware.TraceMiddleware(log))
	r.Use(middleware.LoggerMiddleware(log))

	reqTimeout := cfg.HTTP.RequestTimeout
	if reqTimeout <= 0 {
		reqTimeout = 500 * time.Millisecond
		baseEntry.WithField("effective_req_timeout", reqTimeout.String()).
			Warn("HTTP request timeout was 0; using default")
	}
	r.Use(middleware.TimeoutMiddleware(reqTimeout))

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	pc := controllers.NewProcessController(pipeline, reconstructor, msgRepo, baseEntry)
	hc := controllers.NewHealthController(timeoutPool, rdb, baseEntry, time.Now(), "1.0.0")

	r.GET("/health", middleware.TimeoutMiddleware(2*time.Second), hc.Handle)

	r.POST("/process", pc.Process)
	r.POST("/process/raw", pc.ProcessRaw)
	r.POST("/process/batch", pc.BatchProcessRaw)
	r.POST("/threads/reconstruct", pc.ReconstructThread)
	r.GET("/messages/:id", pc.GetByID)
	r.GET("/messages", pc.GetAll)
	r.GET("/threads/:id/messages", pc.GetThreadMessages)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Not Found"})
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Host,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	srv.RegisterOnShutdown(func() {
		baseEntry.Info("closing database connection pool")
	})

	go func() {
		log.WithField("addr", cfg.HTTP.Host).Info("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	baseEntry.WithFields(logrus.Fields{"signal": sig.String(), "grace_period_sec": cfg.HTTP.ShutdownTimeout}).Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseEntry.WithError(err).Error("shutdown error")
	} else {
		baseEntry.Info("server exited properly")
	}
}
