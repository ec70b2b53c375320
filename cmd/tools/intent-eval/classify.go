package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"kisan-advisory/internal/chatbot/classifier"
	"kisan-advisory/internal/chatbot/entities"
	"kisan-advisory/internal/chatbot/knowledge"
	"kisan-advisory/internal/common/logger"
	"kisan-advisory/internal/models"
)

func init() {
	cmd := &cobra.Command{
		Use:   "classify [message]",
		Short: "Show the fused intent and the individual votes for a message",
		Args:  cobra.MinimumNArgs(1),
		Run:   runClassify,
	}
	rootCmd.AddCommand(cmd)
}

type classifierLogger struct {
	logger.Logger
}

func (a *classifierLogger) With(fields map[string]interface{}) classifier.Logger {
	return &classifierLogger{a.Logger.With(fields)}
}

type entityLogger struct {
	logger.Logger
}

func (a *entityLogger) With(fields map[string]interface{}) entities.Logger {
	return &entityLogger{a.Logger.With(fields)}
}

func runClassify(cmd *cobra.Command, args []string) {
	zapLog, log := newLogger()
	defer zapLog.Sync()

	extractor := entities.NewExtractor(nil, &entityLogger{log})
	engine := classifier.NewEngine(knowledge.Default(), extractor, &classifierLogger{log})

	ex := engine.Explain(strings.Join(args, " "))
	if formatFlag == "json" {
		printJSON(ex)
		return
	}

	fmt.Printf("normalized: %q\n", ex.Normalized)
	fmt.Printf("intent:     %s (%.3f)\n", ex.Intent, ex.Confidence)
	if ex.Floored {
		fmt.Println("            below threshold, general_help fallback")
	}
	fmt.Printf("keyword:    %s (%.3f)\n", ex.Keyword.Intent, ex.Keyword.Confidence)
	fmt.Printf("similarity: %s (%.3f)\n", ex.Similarity.Intent, ex.Similarity.Confidence)
	fmt.Printf("rule:       %s (%.3f)\n", ex.Rule.Intent, ex.Rule.Confidence)

	intents := make([]models.Intent, 0, len(ex.Scores))
	for intent := range ex.Scores {
		intents = append(intents, intent)
	}
	sort.Slice(intents, func(i, j int) bool { return ex.Scores[intents[i]] > ex.Scores[intents[j]] })
	fmt.Println("scores:")
	for _, intent := range intents {
		fmt.Printf("  %-22s %.3f\n", intent, ex.Scores[intent])
	}
	printEntities(ex.Entities)
}

func printEntities(e models.Entities) {
	fmt.Println("entities:")
	fmt.Printf("  crops:     %v\n", e.Crops)
	fmt.Printf("  locations: %v\n", e.Locations)
	fmt.Printf("  numbers:   %v\n", e.Numbers)
	fmt.Printf("  dates:     %v\n", e.Dates)
	fmt.Printf("  problems:  %v\n", e.Problems)
}
