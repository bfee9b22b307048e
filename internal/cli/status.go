package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/version"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show Parley status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Parley %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Printf("Config:    %s\n", paths.Config)
			fmt.Printf("Data:      %s\n", paths.Data)
			fmt.Printf("Knowledge: %s\n", paths.Knowledge)
			fmt.Printf("Logs:      %s\n", paths.Logs)
			fmt.Println()

			cfg, err := config.Load(paths.Config)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Println("Config:    not found (using defaults)")
				} else {
					fmt.Printf("Config:    error loading: %v\n", err)
				}
				return nil
			}

			fmt.Printf("Gateway:   port=%d bind=%s auth=%s\n",
				cfg.Gateway.Port, cfg.Gateway.Bind, cfg.Gateway.Auth.Mode)
			fmt.Printf("Bot:       name=%s clarify=%.2f contextTurns=%d\n",
				cfg.Bot.Name, cfg.Bot.ClarifyThreshold, cfg.Bot.MaxContextTurns)
			fmt.Printf("Session:   store=%s scope=%s idle=%dh sweep=%dm\n",
				cfg.Session.Store, cfg.Session.Scope, cfg.Session.IdleHours, cfg.Session.SweepMinutes)

			seeds := "(none)"
			if len(cfg.Knowledge.SeedFiles) > 0 {
				seeds = strings.Join(cfg.Knowledge.SeedFiles, ", ")
			}
			fmt.Printf("Knowledge: store=%s seeds=%s\n", cfg.Knowledge.Store, seeds)

			if cfg.Channels.IRC != nil {
				irc := cfg.Channels.IRC
				fmt.Printf("IRC:       server=%s nick=%s channels=%s tls=%v\n",
					irc.Server, irc.Nick, strings.Join(irc.Channels, ","), irc.UseTLS)
			} else {
				fmt.Println("IRC:       (not configured)")
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}
