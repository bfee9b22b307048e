package config

// Config is the root configuration for Parley.
type Config struct {
	Gateway   GatewayConfig   `yaml:"gateway,omitempty"`
	Bot       BotConfig       `yaml:"bot,omitempty"`
	Knowledge KnowledgeConfig `yaml:"knowledge,omitempty"`
	Channels  ChannelsConfig  `yaml:"channels,omitempty"`
	Session   SessionConfig   `yaml:"session,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// GatewayConfig controls the gateway HTTP/WebSocket server.
type GatewayConfig struct {
	Port           int              `yaml:"port,omitempty"`
	Bind           string           `yaml:"bind,omitempty"` // "auto" | "lan" | "loopback" | "custom"
	CustomBindHost string           `yaml:"customBindHost,omitempty"`
	Auth           GatewayAuth      `yaml:"auth,omitempty"`
	TLS            GatewayTLS       `yaml:"tls,omitempty"`
	AllowedOrigins []string         `yaml:"allowedOrigins,omitempty"`
}

// GatewayAuth configures gateway authentication.
type GatewayAuth struct {
	Mode     string `yaml:"mode,omitempty"` // "token" | "password"
	Token    string `yaml:"token,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// GatewayTLS configures TLS for the gateway.
type GatewayTLS struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	CertPath string `yaml:"certPath,omitempty"`
	KeyPath  string `yaml:"keyPath,omitempty"`
}

// BotConfig tunes the dialogue engine. The threshold values mirror the
// original rule tables and are deliberately configuration, not code.
type BotConfig struct {
	Name                string   `yaml:"name,omitempty"`
	ClarifyThreshold    float64  `yaml:"clarifyThreshold,omitempty"`    // below this + unknown intent → clarify
	MaxContextTurns     int      `yaml:"maxContextTurns,omitempty"`     // history bound is 2× this
	FollowUpProbability *float64 `yaml:"followUpProbability,omitempty"` // chance of a follow-up suffix
}

// KnowledgeConfig configures the knowledge base.
type KnowledgeConfig struct {
	Store            string   `yaml:"store,omitempty"` // "memory" | "sqlite"
	SeedFiles        []string `yaml:"seedFiles,omitempty"`
	MinIndexScore    *float64 `yaml:"minIndexScore,omitempty"`    // acceptance for indexed candidates
	MinFallbackScore *float64 `yaml:"minFallbackScore,omitempty"` // acceptance for the substring fallback scan
}

// ChannelsConfig defines channel-specific configurations.
type ChannelsConfig struct {
	IRC *IRCConfig `yaml:"irc,omitempty"`
}

// IRCConfig defines IRC channel settings.
type IRCConfig struct {
	Server   string   `yaml:"server"`
	Port     int      `yaml:"port,omitempty"`
	Nick     string   `yaml:"nick"`
	Password string   `yaml:"password,omitempty"`
	Channels []string `yaml:"channels"`
	UseTLS   bool     `yaml:"useTLS,omitempty"`
	SASL     bool     `yaml:"sasl,omitempty"`
	Owner    *string  `yaml:"owner,omitempty"` // only accept messages from this nick; empty disables filtering
}

// SessionConfig defines session behavior.
type SessionConfig struct {
	Scope        string `yaml:"scope,omitempty"` // "per-sender" | "per-chat"
	Store        string `yaml:"store,omitempty"` // "memory" | "sqlite"
	IdleHours    int    `yaml:"idleHours,omitempty"`    // sessions idle longer than this are swept
	SweepMinutes int    `yaml:"sweepMinutes,omitempty"` // sweep interval
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
}
