package channel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soyeahso/parley/internal/domain"
)

type stubChannel struct {
	id       string
	startErr error
	started  bool
	stopped  bool
}

func (s *stubChannel) ID() string { return s.id }
func (s *stubChannel) Capabilities() domain.ChannelCapabilities {
	return domain.ChannelCapabilities{ChatTypes: []domain.ChatType{domain.ChatTypeGroup}}
}
func (s *stubChannel) Start(context.Context) error {
	s.started = true
	return s.startErr
}
func (s *stubChannel) Stop(context.Context) error {
	s.stopped = true
	return nil
}
func (s *stubChannel) Send(context.Context, domain.OutboundMessage) error { return nil }
func (s *stubChannel) OnMessage(func(domain.InboundMessage))              {}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry(nil)

	require.NoError(t, r.Register(&stubChannel{id: "irc"}))
	assert.Error(t, r.Register(&stubChannel{id: "irc"}), "duplicate id")
	assert.Error(t, r.Register(&stubChannel{id: ""}))

	_, ok := r.Get("irc")
	assert.True(t, ok)
	assert.Equal(t, []string{"irc"}, r.IDs())
}

func TestStartAllContinuesPastFailures(t *testing.T) {
	r := NewRegistry(nil)
	bad := &stubChannel{id: "bad", startErr: errors.New("connect refused")}
	good := &stubChannel{id: "good"}
	require.NoError(t, r.Register(bad))
	require.NoError(t, r.Register(good))

	r.StartAll(context.Background())

	assert.True(t, bad.started)
	assert.True(t, good.started)

	statuses := r.Statuses()
	require.Len(t, statuses, 2)
	assert.Equal(t, "bad", statuses[0].ChannelID)
	assert.False(t, statuses[0].Running)
	assert.Contains(t, statuses[0].LastError, "refused")
	assert.True(t, statuses[1].Running)
}

func TestStopAll(t *testing.T) {
	r := NewRegistry(nil)
	c := &stubChannel{id: "irc"}
	require.NoError(t, r.Register(c))
	r.StartAll(context.Background())

	r.StopAll(context.Background())

	assert.True(t, c.stopped)
	statuses := r.Statuses()
	require.Len(t, statuses, 1)
	assert.False(t, statuses[0].Running)
}
