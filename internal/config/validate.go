package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	// Gateway validation
	if cfg.Gateway.Port < 0 || cfg.Gateway.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Gateway.Port),
		})
	}

	validBinds := []string{"auto", "lan", "loopback", "custom"}
	if cfg.Gateway.Bind != "" && !slices.Contains(validBinds, cfg.Gateway.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Gateway.Bind),
		})
	}

	validAuthModes := []string{"token", "password"}
	if cfg.Gateway.Auth.Mode != "" && !slices.Contains(validAuthModes, cfg.Gateway.Auth.Mode) {
		issues = append(issues, ValidationIssue{
			Path:    "gateway.auth.mode",
			Message: fmt.Sprintf("must be one of %v, got %q", validAuthModes, cfg.Gateway.Auth.Mode),
		})
	}

	if cfg.Gateway.TLS.Enabled {
		if cfg.Gateway.TLS.CertPath == "" || cfg.Gateway.TLS.KeyPath == "" {
			issues = append(issues, ValidationIssue{
				Path:    "gateway.tls",
				Message: "certPath and keyPath are required when TLS is enabled",
			})
		}
	}

	// Bot validation
	if cfg.Bot.ClarifyThreshold < 0 || cfg.Bot.ClarifyThreshold > 1 {
		issues = append(issues, ValidationIssue{
			Path:    "bot.clarifyThreshold",
			Message: fmt.Sprintf("must be in [0,1], got %v", cfg.Bot.ClarifyThreshold),
		})
	}
	if cfg.Bot.MaxContextTurns < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "bot.maxContextTurns",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Bot.MaxContextTurns),
		})
	}
	if p := cfg.Bot.FollowUpProbability; p != nil && (*p < 0 || *p > 1) {
		issues = append(issues, ValidationIssue{
			Path:    "bot.followUpProbability",
			Message: fmt.Sprintf("must be in [0,1], got %v", *p),
		})
	}

	// Knowledge validation
	validStores := []string{"memory", "sqlite"}
	if cfg.Knowledge.Store != "" && !slices.Contains(validStores, cfg.Knowledge.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "knowledge.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Knowledge.Store),
		})
	}

	// Session validation
	validScopes := []string{"per-sender", "per-chat"}
	if cfg.Session.Scope != "" && !slices.Contains(validScopes, cfg.Session.Scope) {
		issues = append(issues, ValidationIssue{
			Path:    "session.scope",
			Message: fmt.Sprintf("must be one of %v, got %q", validScopes, cfg.Session.Scope),
		})
	}
	if cfg.Session.Store != "" && !slices.Contains(validStores, cfg.Session.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "session.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Session.Store),
		})
	}
	if cfg.Session.IdleHours < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "session.idleHours",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Session.IdleHours),
		})
	}

	// Logging validation
	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	// IRC validation
	if irc := cfg.Channels.IRC; irc != nil {
		if irc.Server == "" {
			issues = append(issues, ValidationIssue{
				Path:    "channels.irc.server",
				Message: "server is required",
			})
		}
		if irc.Nick == "" {
			issues = append(issues, ValidationIssue{
				Path:    "channels.irc.nick",
				Message: "nick is required",
			})
		}
	}

	return issues
}
