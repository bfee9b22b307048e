// Package routing connects inbound channel messages to the engine and
// routes replies back out.
package routing

import (
	"context"
	"fmt"
	"strings"

	"github.com/soyeahso/parley/internal/bot"
	"github.com/soyeahso/parley/internal/channel"
	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/hooks"
	"github.com/soyeahso/parley/internal/logging"
)

// Router dispatches inbound messages to the engine and sends replies.
type Router struct {
	log      *logging.Logger
	engine   *bot.Engine
	channels *channel.Registry
	scope    string
}

// NewRouter creates a router. scope selects the session key strategy.
func NewRouter(log *logging.Logger, engine *bot.Engine, channels *channel.Registry, scope string) *Router {
	if log == nil {
		log = logging.Nop()
	}
	return &Router{
		log:      log.Sub("routing"),
		engine:   engine,
		channels: channels,
		scope:    scope,
	}
}

// Bind subscribes the router to every registered channel's inbound stream.
// Call after all channels are registered and before StartAll.
func (r *Router) Bind(ctx context.Context) {
	for _, id := range r.channels.IDs() {
		c, _ := r.channels.Get(id)
		c.OnMessage(func(msg domain.InboundMessage) {
			if err := r.HandleInbound(ctx, msg); err != nil {
				r.log.Error().Err(err).Str("channel", msg.ChannelID).Msg("inbound handling failed")
			}
		})
	}
}

// HandleInbound processes one inbound message end to end: session key
// resolution, engine turn, reply delivery.
func (r *Router) HandleInbound(ctx context.Context, msg domain.InboundMessage) error {
	if strings.TrimSpace(msg.Body) == "" {
		return nil
	}

	r.engine.Hooks().Emit(ctx, hooks.EventMessageReceived, map[string]any{
		"channel": msg.ChannelID,
		"from":    msg.From,
		"chat":    msg.ChatID,
	})

	key := ResolveSessionKey(r.scope, msg)
	res, err := r.engine.Process(ctx, key.String(), msg.Body)
	if err != nil {
		return fmt.Errorf("process turn: %w", err)
	}

	out := domain.OutboundMessage{
		ChannelID: msg.ChannelID,
		AccountID: msg.AccountID,
		To:        msg.ChatID,
		Body:      formatReply(res),
		ReplyToID: msg.ID,
	}
	c, ok := r.channels.Get(msg.ChannelID)
	if !ok {
		return fmt.Errorf("unknown channel %q", msg.ChannelID)
	}
	if err := c.Send(ctx, out); err != nil {
		return fmt.Errorf("send reply via %s: %w", msg.ChannelID, err)
	}
	return nil
}

// formatReply renders the engine result for plain-text channels. Suggestions
// become a trailing hint line.
func formatReply(res *bot.Result) string {
	if len(res.Suggestions) == 0 {
		return res.Response
	}
	return res.Response + "\n可以试试：" + strings.Join(res.Suggestions, " | ")
}
