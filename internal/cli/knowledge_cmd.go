package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soyeahso/parley/internal/bot"
	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/knowledge"
)

// customSeedFile collects entries added from the command line. It lives in
// the knowledge directory so every run picks it up.
const customSeedFile = "custom.yaml"

func newKnowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Manage the knowledge base",
	}

	cmd.AddCommand(newKnowledgeAddCmd())
	cmd.AddCommand(newKnowledgeQueryCmd())
	cmd.AddCommand(newKnowledgeListCmd())
	cmd.AddCommand(newKnowledgeImportCmd())
	return cmd
}

func newKnowledgeAddCmd() *cobra.Command {
	var (
		keywords []string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add <topic> <answer>",
		Short: "Add a knowledge entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := paths.EnsureDirs(); err != nil {
				return err
			}
			target := filepath.Join(paths.Knowledge, customSeedFile)

			var doc struct {
				Entries []knowledge.Entry `yaml:"entries"`
			}
			if data, err := os.ReadFile(target); err == nil {
				if err := yaml.Unmarshal(data, &doc); err != nil {
					return fmt.Errorf("parsing %s: %w", target, err)
				}
			}

			doc.Entries = append(doc.Entries, knowledge.Entry{
				Topic:    args[0],
				Answer:   args[1],
				Keywords: keywords,
				Category: category,
			})

			data, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			if err := os.WriteFile(target, data, 0o600); err != nil {
				return err
			}

			fmt.Printf("Added %q (%d entries in %s)\n", args[0], len(doc.Entries), target)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "extra keywords for matching")
	cmd.Flags().StringVar(&category, "category", "", "entry category")
	return cmd
}

func newKnowledgeQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Query the knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := loadedEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			res := engine.Knowledge().Query(strings.Join(args, " "))
			if res == nil {
				fmt.Println("(no match)")
				return nil
			}
			fmt.Printf("%s (score %.2f)\n%s\n", res.Entry.Topic, res.Score, res.Entry.Answer)
			for _, r := range res.Related {
				fmt.Println("  related: " + r.Topic)
			}
			return nil
		},
	}
}

func newKnowledgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all knowledge entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := loadedEngine()
			if err != nil {
				return err
			}
			defer cleanup()

			for _, e := range engine.Knowledge().Entries() {
				cat := e.Category
				if cat == "" {
					cat = "-"
				}
				fmt.Printf("  %-12s %s\n", cat, e.Topic)
			}
			fmt.Printf("%d entries\n", engine.Knowledge().Len())
			return nil
		},
	}
}

func newKnowledgeImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML seed file into the knowledge directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			// Validate before copying.
			probe := knowledge.NewBase(log, 0, 0)
			n, err := probe.LoadSeedFile(args[0])
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			target := filepath.Join(paths.Knowledge, filepath.Base(args[0]))
			if err := os.WriteFile(target, data, 0o600); err != nil {
				return err
			}

			fmt.Printf("Imported %d entries to %s\n", n, target)
			return nil
		},
	}
}

// loadedEngine builds an engine with knowledge restored and seeded, for
// commands that only read.
func loadedEngine() (*bot.Engine, func(), error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		cfg = config.Defaults()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	e, cleanupDB, err := buildEngine(ctx, cfg)
	if err != nil {
		stop()
		return nil, nil, err
	}
	return e, func() {
		cleanupDB()
		stop()
	}, nil
}
