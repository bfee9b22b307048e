package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/soyeahso/parley/internal/bot"
	"github.com/soyeahso/parley/internal/config"
)

// turnProcessor is the slice of the engine the chat loop needs.
type turnProcessor interface {
	Process(ctx context.Context, sessionID, utterance string) (*bot.Result, error)
}

func newChatCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the assistant locally",
		Long:  "With a message argument, processes one turn and exits. Without arguments, starts an interactive session; type \"exit\" or \"quit\" to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				cfg = config.Defaults()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, cleanup, err := buildEngine(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if session == "" {
				session = "cli:" + uuid.NewString()
			}

			if len(args) > 0 {
				return oneTurn(ctx, engine, session, strings.Join(args, " "))
			}
			return interactive(ctx, engine, session, cfg.Bot.Name)
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "session ID (default a fresh one per run)")
	return cmd
}

func oneTurn(ctx context.Context, engine turnProcessor, session, message string) error {
	res, err := engine.Process(ctx, session, message)
	if err != nil {
		return err
	}
	fmt.Println(res.Response)
	for _, s := range res.Suggestions {
		fmt.Println("  · " + s)
	}
	return nil
}

func interactive(ctx context.Context, engine turnProcessor, session, botName string) error {
	if botName == "" {
		botName = "Parley"
	}
	fmt.Printf("%s 已就绪，输入 exit 退出。\n", botName)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		res, err := engine.Process(ctx, session, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("%s: %s\n", botName, res.Response)
		if len(res.Suggestions) > 0 {
			fmt.Println("   可以试试：" + strings.Join(res.Suggestions, " | "))
		}
	}
}
