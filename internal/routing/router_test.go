package routing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/parley/internal/bot"
	"github.com/soyeahso/parley/internal/channel"
	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/domain"
)

// --- session key tests ---

func TestResolveSessionKey(t *testing.T) {
	msg := domain.InboundMessage{
		ChannelID: "irc",
		ChatID:    "#general",
		From:      "alice",
	}

	perSender := ResolveSessionKey(ScopePerSender, msg)
	assert.Equal(t, "irc:#general:alice", perSender.String())

	perChat := ResolveSessionKey(ScopePerChat, msg)
	assert.Equal(t, "irc:#general", perChat.String())

	fallback := ResolveSessionKey("bogus", msg)
	assert.Equal(t, "irc:#general:alice", fallback.String())
}

// --- router tests ---

type fakeChannel struct {
	mu      sync.Mutex
	id      string
	sent    []domain.OutboundMessage
	handler func(domain.InboundMessage)
}

func (f *fakeChannel) ID() string { return f.id }
func (f *fakeChannel) Capabilities() domain.ChannelCapabilities {
	return domain.ChannelCapabilities{ChatTypes: []domain.ChatType{domain.ChatTypeDM}}
}
func (f *fakeChannel) Start(context.Context) error { return nil }
func (f *fakeChannel) Stop(context.Context) error  { return nil }
func (f *fakeChannel) Send(_ context.Context, msg domain.OutboundMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return nil
}
func (f *fakeChannel) OnMessage(h func(domain.InboundMessage)) { f.handler = h }

func (f *fakeChannel) sentMessages() []domain.OutboundMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.OutboundMessage(nil), f.sent...)
}

func newTestRouter(t *testing.T) (*Router, *fakeChannel) {
	t.Helper()
	zero := 0.0
	engine := bot.New(nil, config.BotConfig{
		Name:                "Parley",
		ClarifyThreshold:    0.3,
		MaxContextTurns:     10,
		FollowUpProbability: &zero,
	}, config.KnowledgeConfig{}, nil, nil)

	reg := channel.NewRegistry(nil)
	fc := &fakeChannel{id: "fake"}
	require.NoError(t, reg.Register(fc))

	return NewRouter(nil, engine, reg, ScopePerSender), fc
}

func TestHandleInboundRepliesOnSameChannel(t *testing.T) {
	r, fc := newTestRouter(t)

	err := r.HandleInbound(context.Background(), domain.InboundMessage{
		ID:        "m1",
		ChannelID: "fake",
		From:      "alice",
		ChatID:    "alice",
		ChatType:  domain.ChatTypeDM,
		Body:      "你好",
		Timestamp: time.Now(),
	})

	require.NoError(t, err)
	sent := fc.sentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "fake", sent[0].ChannelID)
	assert.Equal(t, "alice", sent[0].To)
	assert.Equal(t, "m1", sent[0].ReplyToID)
	assert.NotEmpty(t, sent[0].Body)
}

func TestHandleInboundIgnoresEmptyBody(t *testing.T) {
	r, fc := newTestRouter(t)

	err := r.HandleInbound(context.Background(), domain.InboundMessage{
		ChannelID: "fake",
		From:      "alice",
		ChatID:    "alice",
		Body:      "   ",
	})

	require.NoError(t, err)
	assert.Empty(t, fc.sentMessages())
}

func TestHandleInboundUnknownChannel(t *testing.T) {
	r, _ := newTestRouter(t)

	err := r.HandleInbound(context.Background(), domain.InboundMessage{
		ChannelID: "ghost",
		From:      "alice",
		ChatID:    "alice",
		Body:      "你好",
	})

	assert.Error(t, err)
}

func TestBindDeliversThroughHandler(t *testing.T) {
	r, fc := newTestRouter(t)
	r.Bind(context.Background())
	require.NotNil(t, fc.handler)

	fc.handler(domain.InboundMessage{
		ChannelID: "fake",
		From:      "bob",
		ChatID:    "bob",
		Body:      "1+1等于几",
	})

	sent := fc.sentMessages()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].Body, "2")
}

func TestPerSenderIsolationAcrossSenders(t *testing.T) {
	r, fc := newTestRouter(t)
	ctx := context.Background()

	require.NoError(t, r.HandleInbound(ctx, domain.InboundMessage{
		ChannelID: "fake", From: "alice", ChatID: "#room", Body: "帮我翻译一句话",
	}))
	require.NoError(t, r.HandleInbound(ctx, domain.InboundMessage{
		ChannelID: "fake", From: "bob", ChatID: "#room", Body: "你好",
	}))

	sent := fc.sentMessages()
	require.Len(t, sent, 2)
	// Bob's greeting is not swallowed by Alice's pending clarification.
	assert.NotEqual(t, sent[0].Body, sent[1].Body)
}
