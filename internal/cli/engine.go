package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/soyeahso/parley/internal/bot"
	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/hooks"
	"github.com/soyeahso/parley/internal/store"
)

// buildEngine assembles the conversational engine from config: session and
// knowledge stores, built-in seeding, and the persistence hook for sqlite
// mode. The returned cleanup closes the database if one was opened.
func buildEngine(ctx context.Context, cfg config.Config) (*bot.Engine, func(), error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, nil, fmt.Errorf("creating data directories: %w", err)
	}

	hookMgr := hooks.NewManager(log)

	var db *store.DB
	cleanup := func() {}
	if cfg.Session.Store == "sqlite" || cfg.Knowledge.Store == "sqlite" {
		dbPath := filepath.Join(paths.Data, "parley.db")
		var err error
		db, err = store.Open(ctx, dbPath, log)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		cleanup = func() { db.Close() }
		log.Info().Str("path", dbPath).Msg("database opened")
	}

	var sessions bot.SessionStore
	if cfg.Session.Store == "sqlite" {
		sessions = store.NewSessionStore(db)
		log.Info().Msg("using SQLite session store")
	} else {
		sessions = bot.NewMemorySessionStore()
		log.Info().Msg("using in-memory session store")
	}

	engine := bot.New(log, cfg.Bot, cfg.Knowledge, sessions, hookMgr)

	if cfg.Knowledge.Store == "sqlite" {
		kstore := store.NewKnowledgeStore(db)
		restored, err := kstore.Restore(ctx, engine.Knowledge())
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("restoring knowledge: %w", err)
		}
		if restored > 0 {
			log.Info().Int("entries", restored).Msg("knowledge restored from database")
		}
		hookMgr.On(hooks.EventKnowledgeAdded, "sqlite-persist", func(ctx context.Context, p hooks.Payload) error {
			id, _ := p.Data["id"].(string)
			entry, ok := engine.Knowledge().Get(id)
			if !ok {
				return fmt.Errorf("knowledge entry %s not found after add", id)
			}
			return kstore.Save(ctx, entry)
		})
	}

	if engine.Knowledge().Len() == 0 {
		engine.Knowledge().SeedDefaults()
		log.Info().Int("entries", engine.Knowledge().Len()).Msg("seeded default knowledge")
	}

	loadSeedFiles(engine, cfg)

	return engine, cleanup, nil
}

// loadSeedFiles loads every configured seed file plus any YAML dropped into
// the knowledge directory. Relative configured paths resolve against the
// knowledge directory.
func loadSeedFiles(engine *bot.Engine, cfg config.Config) {
	seen := make(map[string]bool)

	files := make([]string, 0, len(cfg.Knowledge.SeedFiles))
	for _, f := range cfg.Knowledge.SeedFiles {
		if !filepath.IsAbs(f) {
			f = filepath.Join(paths.Knowledge, f)
		}
		files = append(files, f)
	}
	if globbed, err := filepath.Glob(filepath.Join(paths.Knowledge, "*.yaml")); err == nil {
		files = append(files, globbed...)
	}

	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		n, err := engine.Knowledge().LoadSeedFile(f)
		if err != nil {
			log.Warn().Err(err).Str("file", f).Msg("seed file load failed")
			continue
		}
		log.Info().Int("entries", n).Str("file", f).Msg("seed file loaded")
	}
}
