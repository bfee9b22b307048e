package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soyeahso/parley/internal/channel"
	"github.com/soyeahso/parley/internal/channel/irc"
	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/gateway"
	"github.com/soyeahso/parley/internal/routing"
)

func newGatewayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Manage the Parley gateway server",
	}

	cmd.AddCommand(newGatewayRunCmd())
	return cmd
}

func newGatewayRunCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the gateway server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Gateway.Port = port
			}
			if bind != "" {
				cfg.Gateway.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			// Raw config for the config.get/config.set RPCs
			raw, err := config.LoadRaw(paths.Config)
			if err != nil {
				raw = make(map[string]any)
			}

			// Block until SIGINT/SIGTERM
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, cleanup, err := buildEngine(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			// Sweep idle sessions in the background
			engine.StartSweeper(ctx,
				time.Duration(cfg.Session.SweepMinutes)*time.Minute,
				time.Duration(cfg.Session.IdleHours)*time.Hour)

			channels := channel.NewRegistry(log)
			if cfg.Channels.IRC != nil {
				if err := channels.Register(irc.New(*cfg.Channels.IRC, log)); err != nil {
					return fmt.Errorf("registering irc channel: %w", err)
				}
			}

			if len(channels.IDs()) > 0 {
				router := routing.NewRouter(log, engine, channels, cfg.Session.Scope)
				router.Bind(ctx)
				channels.StartAll(ctx)
				defer channels.StopAll(context.Background())
				log.Info().
					Int("channels", len(channels.IDs())).
					Str("scope", cfg.Session.Scope).
					Msg("message routing active")
			}

			srv := gateway.New(cfg, engine, log,
				gateway.WithConfigRaw(raw),
				gateway.WithConfigPath(paths.Config),
				gateway.WithChannels(channels),
			)

			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override gateway port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind mode (auto, lan, loopback, custom)")

	return cmd
}
