package memory

import (
	"encoding/json"
	"fmt"
	"strings"

	"kisan-advisory/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

const snapshotVersion = 1

// snapshot is the serialized form of a ConversationState.
type snapshot struct {
	Version int                       `json:"version"`
	State   *models.ConversationState `json:"state"`
}

var snapshotSchema = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["version", "state"],
  "properties": {
    "version": {"type": "integer", "enum": [1]},
    "state": {
      "type": "object",
      "required": ["history", "user_profile"],
      "properties": {
        "history": {
          "type": ["array", "null"],
          "maxItems": 20,
          "items": {
            "type": "object",
            "required": ["role", "content", "timestamp"],
            "properties": {
              "id": {"type": "string"},
              "role": {"type": "string", "enum": ["user", "assistant"]},
              "content": {"type": "string"},
              "timestamp": {"type": "string", "format": "date-time"},
              "intent": {"type": "string"},
              "entities": {"type": ["object", "null"]},
              "metadata": {"type": ["object", "null"], "additionalProperties": {"type": "string"}}
            }
          }
        },
        "last_intent": {"type": "string"},
        "pending_questions": {"type": ["array", "null"], "items": {"type": "string"}},
        "user_profile": {
          "type": "object",
          "properties": {
            "location": {"type": "string"},
            "crops": {"type": ["array", "null"], "items": {"type": "string"}, "uniqueItems": true}
          }
        }
      }
    }
  }
}`)

// EncodeSnapshot serializes state.
func EncodeSnapshot(state *models.ConversationState) ([]byte, error) {
	if state == nil {
		state = models.NewConversationState()
	}
	return json.Marshal(snapshot{Version: snapshotVersion, State: state})
}

// DecodeSnapshot validates data and returns the state it holds. Any problem
// is reported as ErrSnapshotInvalid.
func DecodeSnapshot(data []byte) (*models.ConversationState, error) {
	if err := ValidateSnapshot(data); err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	return snap.State, nil
}

// ValidateSnapshot checks data against the snapshot schema.
func ValidateSnapshot(data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: not valid JSON", ErrSnapshotInvalid)
	}

	result, err := gojsonschema.Validate(snapshotSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshotInvalid, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrSnapshotInvalid, strings.Join(errs, "; "))
	}
	return nil
}
