package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kisan-advisory/internal/common/config"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export [user-id]",
		Short: "Print the stored conversation snapshot for a user",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}
	rootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	zapLog, log := newLogger()
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}
	// Snapshots only outlive the process in Redis.
	cfg.Chatbot.MemoryBackend = "redis"

	bot, closeBot, err := openChatbot(cmd, cfg, log)
	if err != nil {
		exitErr("open chatbot", err)
	}
	defer closeBot()

	raw, err := bot.Manager.Export(cmd.Context(), args[0])
	if err != nil {
		exitErr("export", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(out.String())
}
