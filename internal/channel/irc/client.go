// Package irc implements the IRC messaging channel using the girc library.
// In channels the bot answers when addressed by nick; direct messages are
// always answered.
package irc

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lrstanley/girc"

	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/logging"
)

// Channel implements domain.Channel for IRC.
type Channel struct {
	cfg    config.IRCConfig
	client *girc.Client
	log    *logging.Logger

	mu      sync.RWMutex
	handler func(msg domain.InboundMessage)
	running bool
	lastErr string
}

// New creates an IRC channel from configuration.
func New(cfg config.IRCConfig, log *logging.Logger) *Channel {
	if log == nil {
		log = logging.Nop()
	}
	return &Channel{
		cfg: cfg,
		log: log.Sub("irc"),
	}
}

func (c *Channel) ID() string { return "irc" }

func (c *Channel) Capabilities() domain.ChannelCapabilities {
	return domain.ChannelCapabilities{
		ChatTypes: []domain.ChatType{domain.ChatTypeDM, domain.ChatTypeGroup},
		Reply:     false,
	}
}

func (c *Channel) OnMessage(handler func(msg domain.InboundMessage)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = handler
}

// Status returns the current runtime status.
func (c *Channel) Status() domain.ChannelStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.ChannelStatus{
		ChannelID: "irc",
		Connected: c.client != nil && c.client.IsConnected(),
		Running:   c.running,
		LastError: c.lastErr,
	}
}

// Start connects to the IRC server and begins processing messages.
func (c *Channel) Start(ctx context.Context) error {
	port := c.cfg.Port
	if port == 0 {
		if c.cfg.UseTLS {
			port = 6697
		} else {
			port = 6667
		}
	}

	gircCfg := girc.Config{
		Server:  c.cfg.Server,
		Port:    port,
		Nick:    c.cfg.Nick,
		User:    c.cfg.Nick,
		Name:    "Parley IRC Bot",
		SSL:     c.cfg.UseTLS,
		Version: "Parley/1.0",
	}

	if c.cfg.UseTLS {
		gircCfg.TLSConfig = &tls.Config{
			ServerName: c.cfg.Server,
		}
	}

	if c.cfg.SASL && c.cfg.Password != "" {
		gircCfg.SASL = &girc.SASLPlain{
			User: c.cfg.Nick,
			Pass: c.cfg.Password,
		}
	} else if c.cfg.Password != "" {
		gircCfg.ServerPass = c.cfg.Password
	}

	c.client = girc.New(gircCfg)
	c.registerHandlers()

	c.mu.Lock()
	c.running = true
	c.lastErr = ""
	c.mu.Unlock()

	c.log.Info().
		Str("server", c.cfg.Server).
		Int("port", port).
		Str("nick", c.cfg.Nick).
		Strs("channels", c.cfg.Channels).
		Bool("tls", c.cfg.UseTLS).
		Msg("connecting to IRC")

	// Run connection in a goroutine — Connect() blocks
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.client.Connect()
	}()

	select {
	case err := <-errCh:
		c.mu.Lock()
		c.running = false
		if err != nil {
			c.lastErr = err.Error()
		}
		c.mu.Unlock()
		if err != nil {
			return fmt.Errorf("irc connect: %w", err)
		}
		return nil
	case <-ctx.Done():
		c.client.Close()
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
		return ctx.Err()
	}
}

// Stop gracefully disconnects from the IRC server.
func (c *Channel) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.client.IsConnected() {
		c.log.Info().Msg("disconnecting from IRC")
		c.client.Quit("Parley shutting down")
	}
	c.running = false
	return nil
}

// Send delivers a message to an IRC channel or user. Long or multi-line
// replies are split because IRC PRIVMSG has a ~512 byte line limit and no
// embedded newlines.
func (c *Channel) Send(ctx context.Context, msg domain.OutboundMessage) error {
	if c.client == nil || !c.client.IsConnected() {
		return fmt.Errorf("irc: not connected")
	}

	target := msg.To
	if target == "" {
		return fmt.Errorf("irc: no target specified")
	}

	lines := splitMessage(msg.Body, 400)
	for _, line := range lines {
		c.client.Cmd.Message(target, line)
	}

	c.log.Debug().
		Str("to", target).
		Int("lines", len(lines)).
		Msg("sent IRC message")

	return nil
}

// registerHandlers sets up all IRC event handlers.
func (c *Channel) registerHandlers() {
	c.client.Handlers.Add(girc.CONNECTED, c.onConnected)
	c.client.Handlers.Add(girc.PRIVMSG, c.onPrivmsg)
	c.client.Handlers.Add(girc.DISCONNECTED, c.onDisconnected)
}

func (c *Channel) onConnected(_ *girc.Client, e girc.Event) {
	c.log.Info().Str("nick", c.client.GetNick()).Msg("connected to IRC")

	for _, ch := range c.cfg.Channels {
		c.log.Info().Str("channel", ch).Msg("joining channel")
		c.client.Cmd.Join(ch)
	}
}

func (c *Channel) onPrivmsg(_ *girc.Client, e girc.Event) {
	if e.Source == nil {
		return
	}

	// Ignore messages from ourselves
	if e.Source.Name == c.client.GetNick() {
		return
	}

	body := e.Last()
	if e.IsAction() {
		body = e.StripAction()
	}

	if !e.IsFromChannel() {
		// Direct messages always reach the bot; the reply target is the
		// sender's nick.
		c.deliverInbound(e.Source.Name, e.Source.Name, domain.ChatTypeDM, body)
		return
	}

	chatID := e.Params[0]

	// In channels, only respond when addressed by nick.
	utterance, mentioned := stripMention(body, c.client.GetNick())
	if !mentioned {
		return
	}

	// Only respond to the configured owner when owner filtering is enabled.
	if owner := c.owner(); owner != "" && !strings.EqualFold(e.Source.Name, owner) {
		c.log.Debug().
			Str("nick", e.Source.Name).
			Str("owner", owner).
			Str("channel", chatID).
			Msg("ignoring message from non-owner")
		return
	}

	c.deliverInbound(e.Source.Name, chatID, domain.ChatTypeGroup, utterance)
}

// owner returns the configured owner nick. Empty (the default) means no
// owner filtering.
func (c *Channel) owner() string {
	if c.cfg.Owner == nil {
		return ""
	}
	return *c.cfg.Owner
}

func (c *Channel) deliverInbound(from, chatID string, chatType domain.ChatType, body string) {
	msg := domain.InboundMessage{
		ID:        uuid.New().String(),
		ChannelID: "irc",
		From:      from,
		FromName:  from,
		ChatID:    chatID,
		ChatType:  chatType,
		Body:      body,
		Timestamp: time.Now(),
	}

	c.mu.RLock()
	handler := c.handler
	c.mu.RUnlock()

	if handler != nil {
		handler(msg)
	}
}

func (c *Channel) onDisconnected(_ *girc.Client, e girc.Event) {
	c.log.Warn().Msg("disconnected from IRC")
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

// stripMention reports whether text addresses the nick and returns the text
// with the leading "nick:" / "nick," prefix removed. A bare mention
// anywhere in the line also counts, but only a leading mention is stripped.
func stripMention(text, nick string) (string, bool) {
	if nick == "" {
		return text, false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	nickLower := strings.ToLower(nick)
	if !strings.Contains(lower, nickLower) {
		return text, false
	}

	trimmed := strings.TrimSpace(text)
	for _, sep := range []string{":", ",", " "} {
		prefix := nickLower + sep
		if strings.HasPrefix(strings.ToLower(trimmed), prefix) {
			return strings.TrimSpace(trimmed[len(prefix):]), true
		}
	}
	if strings.EqualFold(trimmed, nick) {
		return "", true
	}
	return trimmed, true
}

// splitMessage breaks a long message into chunks suitable for IRC.
// Each newline produces a separate chunk; lines longer than maxLen are
// further split at the byte boundary.
func splitMessage(text string, maxLen int) []string {
	var chunks []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			chunks = append(chunks, line)
		}
		for len(line) > maxLen {
			chunks = append(chunks, line[:maxLen])
			line = line[maxLen:]
		}
		if line != "" {
			chunks = append(chunks, line)
		}
	}
	if len(chunks) == 0 {
		return []string{text}
	}
	return chunks
}
