// cmd/advisory-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kisan-advisory/internal/bootstrap"
	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/common/observability"
	internalhttp "kisan-advisory/internal/http"
	"kisan-advisory/internal/workers/advisory"

	cr "kisan-advisory/internal/workers/advisory/crop-recommendation"
	dd "kisan-advisory/internal/workers/advisory/disease-detection"
	pp "kisan-advisory/internal/workers/advisory/price-prediction"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "console")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting advisory API...", zap.String("version", cfg.App.Version))

	obs := observability.New(cfg.App.Name, cfg.Observability.JaegerEndpoint, log)
	defer obs.Shutdown()

	ctx := context.Background()
	var backends []database.Pinger

	// --- Redis: conversation snapshots and the price cache ---
	var rdb *database.RedisClient
	if cfg.Chatbot.MemoryBackend == "redis" || cfg.Advisory.PriceBackend == "postgres" {
		err = retryWithBackoff(func() error {
			rdb = database.NewRedis(cfg.Database.Redis)
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		backends = append(backends, rdb)
		zapLog.Info("Redis connected successfully")
	}

	// --- PostgreSQL: mandi price history ---
	var pg *database.PostgresClient
	if cfg.Advisory.PriceBackend == "postgres" {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		if err := pg.Migrate(ctx); err != nil {
			zapLog.Fatal("postgres migration failed", zap.Error(err))
		}
		backends = append(backends, pg)
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Elasticsearch: turn archive ---
	var esClient *database.ElasticsearchClient
	if cfg.Archive.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		backends = append(backends, esClient)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Chatbot core ---
	b := bootstrap.Backends{Elasticsearch: esClient}
	if rdb != nil {
		b.Redis = rdb.Client
	}
	bot, err := bootstrap.NewChatbot(ctx, cfg, b, log, dialogue.WithObservability(obs))
	if err != nil {
		zapLog.Fatal("chatbot init failed", zap.Error(err))
	}
	defer bot.Close()
	zapLog.Info("Chatbot ready",
		zap.String("locale", cfg.Chatbot.Locale),
		zap.String("memoryBackend", cfg.Chatbot.MemoryBackend),
		zap.String("responder", cfg.Chatbot.Responder),
	)

	deps := internalhttp.Deps{
		Chat:        bot.Manager,
		Backends:    backends,
		Logger:      log,
		MetricsPath: cfg.Observability.MetricsPath,
		AppVersion:  cfg.App.Version,
	}
	if !cfg.Observability.MetricsEnabled {
		deps.MetricsPath = ""
	}

	// --- Advisory workers ---
	if wc := config.GetWorkerConfig(cfg, cr.TaskType); wc.Enabled {
		deps.Crop = cr.NewHandler(cr.LoadConfig(wc), advisory.PredictorFor(wc, cr.ProfileScorer()), log)
		zapLog.Info("Registered worker", zap.String("taskType", cr.TaskType))
	}

	if wc := config.GetWorkerConfig(cfg, dd.TaskType); wc.Enabled {
		deps.Disease = dd.NewHandler(dd.LoadConfig(wc), advisory.PredictorFor(wc, nil), log)
		zapLog.Info("Registered worker", zap.String("taskType", dd.TaskType))
	}

	if wc := config.GetWorkerConfig(cfg, pp.TaskType); wc.Enabled {
		pcfg := pp.LoadConfig(wc, cfg.Advisory)
		var history pp.PriceHistory
		if pg != nil {
			history = pp.NewPostgresHistory(pg.DB, rdb.Client, pcfg)
		}
		deps.Price = pp.NewHandler(pcfg, history, log)
		zapLog.Info("Registered worker", zap.String("taskType", pp.TaskType))
	}

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      internalhttp.NewRouter(deps),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLog.Info("Shutting down advisory API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}
	bot.Manager.Wait()
	zapLog.Info("Shutdown complete")
}
