package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kisan-advisory/internal/common/config"
)

var chatUser string

func init() {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive session against the dialogue manager",
		Long:  "Reads one message per line. Type /summary, /history, /clear or /quit.",
		Run:   runChat,
	}
	cmd.Flags().StringVarP(&chatUser, "user", "u", "cli-user", "User ID for the session (empty for anonymous)")
	rootCmd.AddCommand(cmd)
}

func runChat(cmd *cobra.Command, args []string) {
	zapLog, log := newLogger()
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	bot, closeBot, err := openChatbot(cmd, cfg, log)
	if err != nil {
		exitErr("open chatbot", err)
	}
	defer closeBot()

	ctx := cmd.Context()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "/quit", "/exit":
			return
		case "/summary":
			s, err := bot.Manager.Summary(ctx, chatUser)
			if err != nil {
				fmt.Println("error:", err)
				break
			}
			printJSON(s)
		case "/history":
			h, err := bot.Manager.History(ctx, chatUser)
			if err != nil {
				fmt.Println("error:", err)
				break
			}
			for _, t := range h {
				fmt.Printf("[%s] %s: %s\n", t.Timestamp.Format("15:04:05"), t.Role, t.Content)
			}
		case "/clear":
			if err := bot.Manager.Clear(ctx, chatUser); err != nil {
				fmt.Println("error:", err)
			}
		default:
			reply := bot.Manager.ProcessMessage(ctx, line, nil, chatUser)
			body := reply.Body()
			if formatFlag == "json" {
				printJSON(body)
			} else {
				fmt.Printf("%s\n  [%s %s %.2f]\n", body.Response, reply.Kind(), body.Intent, body.Confidence)
				if body.NeedsFollowUp {
					fmt.Printf("  follow-up: %s\n", body.FollowUpQuestion)
				}
			}
		}
		fmt.Print("> ")
	}
	bot.Manager.Wait()
}
