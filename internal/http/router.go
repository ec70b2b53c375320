// Package http is the gin boundary of the advisory API: chat, the three
// advisory workers, health and metrics.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/models"
	crop "kisan-advisory/internal/workers/advisory/crop-recommendation"
	disease "kisan-advisory/internal/workers/advisory/disease-detection"
	price "kisan-advisory/internal/workers/advisory/price-prediction"
)

// Chat is satisfied by *dialogue.Manager.
type Chat interface {
	ProcessMessage(ctx context.Context, message string, msgContext map[string]interface{}, userID string) dialogue.Reply
	History(ctx context.Context, userID string) ([]models.Turn, error)
	Summary(ctx context.Context, userID string) (*dialogue.Summary, error)
	Clear(ctx context.Context, userID string) error
	Export(ctx context.Context, userID string) ([]byte, error)
	Import(ctx context.Context, userID string, snapshot []byte) error
	Stats(ctx context.Context) (*dialogue.Stats, error)
	Suggestions() []string
}

type CropRecommender interface {
	Execute(ctx context.Context, input *crop.Input) (*crop.Output, error)
}

type DiseaseDetector interface {
	Execute(ctx context.Context, input *disease.Input) (*disease.Output, error)
}

type PricePredictor interface {
	Execute(ctx context.Context, input *price.Input) (*price.Output, error)
}

// Deps are the services behind the routes. A nil advisory worker leaves its
// route unregistered.
type Deps struct {
	Chat        Chat
	Crop        CropRecommender
	Disease     DiseaseDetector
	Price       PricePredictor
	Backends    []database.Pinger
	Logger      logger.Logger
	MetricsPath string
	AppVersion  string
}

const healthTimeout = 3 * time.Second

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(d.Logger), Logging(d.Logger))

	chat := &chatHandler{chat: d.Chat, logger: d.Logger}
	r.POST("/chat", chat.Message)
	r.GET("/chat/suggestions", chat.Suggestions)
	r.GET("/chat/stats", chat.Stats)
	r.GET("/chat/:userId/history", chat.History)
	r.GET("/chat/:userId/summary", chat.Summary)
	r.DELETE("/chat/:userId", chat.Clear)
	r.GET("/chat/:userId/export", chat.Export)
	r.PUT("/chat/:userId/import", chat.Import)

	adv := &advisoryHandler{crop: d.Crop, disease: d.Disease, price: d.Price}
	if d.Crop != nil {
		r.POST("/crop/recommend", adv.RecommendCrop)
	}
	if d.Disease != nil {
		r.POST("/disease/detect", adv.DetectDisease)
	}
	if d.Price != nil {
		r.POST("/price/predict", adv.PredictPrice)
	}

	r.GET("/health", func(c *gin.Context) {
		status, healthy := database.CheckAll(c.Request.Context(), healthTimeout, d.Backends...)
		code := http.StatusOK
		state := "healthy"
		if !healthy {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		writeJSON(c, code, gin.H{
			"status":   state,
			"version":  d.AppVersion,
			"backends": status,
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	})

	if d.MetricsPath != "" {
		r.GET(d.MetricsPath, gin.WrapH(promhttp.Handler()))
	}
	return r
}
