// Package archive writes answered chat turns to Elasticsearch for offline
// analysis of intent traffic.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/models"
)

const DefaultIndex = "chatbot-turns"

var (
	ErrIndexFailed = errors.New("ARCHIVE_INDEX_FAILED")
	ErrNoTurnID    = errors.New("ARCHIVE_MISSING_TURN_ID")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// Mapping is the index definition created by EnsureIndex.
const Mapping = `{
  "mappings": {
    "properties": {
      "turn_id":         {"type": "keyword"},
      "conversation_id": {"type": "keyword"},
      "anonymous":       {"type": "boolean"},
      "message":         {"type": "text"},
      "response":        {"type": "text"},
      "intent":          {"type": "keyword"},
      "confidence":      {"type": "float"},
      "entities": {
        "properties": {
          "crops":     {"type": "keyword"},
          "locations": {"type": "keyword"},
          "numbers":   {"type": "keyword"},
          "dates":     {"type": "keyword"},
          "problems":  {"type": "keyword"}
        }
      },
      "source":    {"type": "keyword"},
      "timestamp": {"type": "date"}
    }
  }
}`

// ElasticsearchArchive indexes one document per turn, keyed by turn ID so a
// retried write overwrites instead of duplicating.
type ElasticsearchArchive struct {
	client *database.ElasticsearchClient
	index  string
	logger Logger
}

func NewElasticsearchArchive(client *database.ElasticsearchClient, index string, log Logger) *ElasticsearchArchive {
	if index == "" {
		index = DefaultIndex
	}
	return &ElasticsearchArchive{
		client: client,
		index:  index,
		logger: log.With(map[string]interface{}{"component": "turn-archive", "index": index}),
	}
}

// EnsureIndex creates the archive index if it is missing.
func (a *ElasticsearchArchive) EnsureIndex(ctx context.Context) error {
	if err := a.client.EnsureIndex(ctx, a.index, Mapping); err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	a.logger.Info("turn archive index ready", nil)
	return nil
}

func (a *ElasticsearchArchive) IndexTurn(ctx context.Context, record models.TurnRecord) error {
	if record.TurnID == "" {
		return ErrNoTurnID
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: encode turn: %v", ErrIndexFailed, err)
	}

	es := a.client.Client
	res, err := es.Index(a.index, bytes.NewReader(body),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(record.TurnID),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIndexFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		a.logger.Warn("elasticsearch rejected turn", map[string]interface{}{
			"turnId": record.TurnID,
			"status": res.Status(),
		})
		return fmt.Errorf("%w: %s", ErrIndexFailed, res.Status())
	}
	return nil
}
