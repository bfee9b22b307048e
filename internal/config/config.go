package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Gateway: GatewayConfig{
			Port: 18790,
			Bind: "loopback",
			Auth: GatewayAuth{
				Mode: "token",
			},
		},
		Bot: BotConfig{
			Name:             "Parley",
			ClarifyThreshold: 0.3,
			MaxContextTurns:  10,
		},
		Knowledge: KnowledgeConfig{
			Store: "memory",
		},
		Session: SessionConfig{
			Scope:        "per-sender",
			Store:        "memory",
			IdleHours:    24,
			SweepMinutes: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// applyDefaults fills zero values after unmarshalling a partial config.
func applyDefaults(cfg *Config) {
	d := Defaults()
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = d.Gateway.Port
	}
	if cfg.Gateway.Bind == "" {
		cfg.Gateway.Bind = d.Gateway.Bind
	}
	if cfg.Gateway.Auth.Mode == "" {
		cfg.Gateway.Auth.Mode = d.Gateway.Auth.Mode
	}
	if cfg.Bot.Name == "" {
		cfg.Bot.Name = d.Bot.Name
	}
	if cfg.Bot.ClarifyThreshold == 0 {
		cfg.Bot.ClarifyThreshold = d.Bot.ClarifyThreshold
	}
	if cfg.Bot.MaxContextTurns == 0 {
		cfg.Bot.MaxContextTurns = d.Bot.MaxContextTurns
	}
	if cfg.Knowledge.Store == "" {
		cfg.Knowledge.Store = d.Knowledge.Store
	}
	if cfg.Session.Scope == "" {
		cfg.Session.Scope = d.Session.Scope
	}
	if cfg.Session.Store == "" {
		cfg.Session.Store = d.Session.Store
	}
	if cfg.Session.IdleHours == 0 {
		cfg.Session.IdleHours = d.Session.IdleHours
	}
	if cfg.Session.SweepMinutes == 0 {
		cfg.Session.SweepMinutes = d.Session.SweepMinutes
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
}
