// cmd/tools/intent-eval/main.go
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kisan-advisory/internal/bootstrap"
	"kisan-advisory/internal/common/config"
	"kisan-advisory/internal/common/database"
	"kisan-advisory/internal/common/logger"
)

var (
	logLevel   string
	formatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "intent-eval",
	Short: "Inspect the advisory chatbot from the command line",
	Long:  "Classify messages, chat against the dialogue manager, or dump a stored conversation snapshot.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "warn", "Log level")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, logger.Logger) {
	zapLog := logger.New(logLevel, "console")
	return zapLog, logger.NewZapAdapter(zapLog)
}

// openChatbot builds the chatbot from the service config. A Redis client is
// connected only when the memory backend asks for one.
func openChatbot(cmd *cobra.Command, cfg *config.Config, log logger.Logger) (*bootstrap.Chatbot, func(), error) {
	var b bootstrap.Backends
	cleanup := func() {}

	if cfg.Chatbot.MemoryBackend == "redis" {
		rdb := database.NewRedis(cfg.Database.Redis)
		if err := rdb.Ping(cmd.Context()); err != nil {
			return nil, cleanup, err
		}
		b.Redis = rdb.Client
		cleanup = func() { rdb.Close() }
	}
	// The CLI never writes to the turn archive.
	cfg.Archive.Enabled = false

	bot, err := bootstrap.NewChatbot(cmd.Context(), cfg, b, log)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return bot, func() { bot.Close(); cleanup() }, nil
}

func printJSON(v interface{}) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
