package bootstrap

import (
	"kisan-advisory/internal/chatbot/archive"
	"kisan-advisory/internal/chatbot/classifier"
	"kisan-advisory/internal/chatbot/dialogue"
	"kisan-advisory/internal/chatbot/entities"
	"kisan-advisory/internal/chatbot/memory"
	"kisan-advisory/internal/chatbot/response"
	"kisan-advisory/internal/common/logger"
)

// Each chatbot package declares its own Logger whose With returns that
// package's type. These adapters bridge the shared logger.Logger.

type entityLoggerAdapter struct {
	logger.Logger
}

func (a *entityLoggerAdapter) With(fields map[string]interface{}) entities.Logger {
	return &entityLoggerAdapter{a.Logger.With(fields)}
}

type classifierLoggerAdapter struct {
	logger.Logger
}

func (a *classifierLoggerAdapter) With(fields map[string]interface{}) classifier.Logger {
	return &classifierLoggerAdapter{a.Logger.With(fields)}
}

type memoryLoggerAdapter struct {
	logger.Logger
}

func (a *memoryLoggerAdapter) With(fields map[string]interface{}) memory.Logger {
	return &memoryLoggerAdapter{a.Logger.With(fields)}
}

type responseLoggerAdapter struct {
	logger.Logger
}

func (a *responseLoggerAdapter) With(fields map[string]interface{}) response.Logger {
	return &responseLoggerAdapter{a.Logger.With(fields)}
}

type dialogueLoggerAdapter struct {
	logger.Logger
}

func (a *dialogueLoggerAdapter) With(fields map[string]interface{}) dialogue.Logger {
	return &dialogueLoggerAdapter{a.Logger.With(fields)}
}

type archiveLoggerAdapter struct {
	logger.Logger
}

func (a *archiveLoggerAdapter) With(fields map[string]interface{}) archive.Logger {
	return &archiveLoggerAdapter{a.Logger.With(fields)}
}
