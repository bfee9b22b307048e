package gateway

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soyeahso/parley/internal/bot"
	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/hooks"
)

// --- resolveBindAddr tests ---

func TestResolveBindAddr(t *testing.T) {
	cases := []struct {
		bind string
		host string
		want string
	}{
		{bind: "loopback", want: "127.0.0.1:8790"},
		{bind: "lan", want: "0.0.0.0:8790"},
		{bind: "auto", want: "0.0.0.0:8790"},
		{bind: "custom", host: "10.0.0.5", want: "10.0.0.5:8790"},
		{bind: "custom", host: "", want: "0.0.0.0:8790"},
		{bind: "", want: "127.0.0.1:8790"},
		{bind: "bogus", want: "127.0.0.1:8790"},
	}
	for _, tc := range cases {
		got := resolveBindAddr(config.GatewayConfig{Port: 8790, Bind: tc.bind, CustomBindHost: tc.host})
		require.Equal(t, tc.want, got, "bind=%q host=%q", tc.bind, tc.host)
	}
}

// --- origin check tests ---

func TestCheckWebSocketOrigin(t *testing.T) {
	check := checkWebSocketOrigin([]string{"https://app.example.com"})

	req := func(origin string) *http.Request {
		r, _ := http.NewRequest(http.MethodGet, "/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	require.True(t, check(req("")), "no Origin header is a non-browser client")
	require.True(t, check(req("https://app.example.com")))
	require.False(t, check(req("https://evil.example.com")))

	wildcard := checkWebSocketOrigin([]string{"*"})
	require.True(t, wildcard(req("https://anywhere.example.com")))

	none := checkWebSocketOrigin(nil)
	require.False(t, none(req("https://app.example.com")))
}

func TestIsOriginAllowed(t *testing.T) {
	require.False(t, isOriginAllowed("https://a.test", nil))
	require.True(t, isOriginAllowed("https://a.test", []string{"https://a.test"}))
	require.True(t, isOriginAllowed("https://a.test", []string{"*"}))
	require.False(t, isOriginAllowed("https://b.test", []string{"https://a.test"}))
}

// --- auth rate limiter tests ---

func TestAuthRateLimiterBlocksAfterMaxFails(t *testing.T) {
	rl := &authRateLimiter{failures: make(map[string][]time.Time)}
	addr := "192.168.1.7:51234"

	require.True(t, rl.allow(addr))
	for i := 0; i < authRateMaxFails; i++ {
		rl.recordFailure(addr)
	}
	require.False(t, rl.allow(addr))

	// A different IP is unaffected.
	require.True(t, rl.allow("192.168.1.8:51234"))
}

func TestAuthRateLimiterWindowExpiry(t *testing.T) {
	rl := &authRateLimiter{failures: make(map[string][]time.Time)}
	old := time.Now().Add(-authRateWindow - time.Minute)
	for i := 0; i < authRateMaxFails; i++ {
		rl.failures["10.0.0.1"] = append(rl.failures["10.0.0.1"], old)
	}
	require.True(t, rl.allow("10.0.0.1:4444"))
}

func TestAuthRateLimiterIPCap(t *testing.T) {
	rl := &authRateLimiter{failures: make(map[string][]time.Time)}
	for i := 0; i < authRateMaxIPs; i++ {
		rl.recordFailure(fmt.Sprintf("10.1.%d.%d:1", i/256, i%256))
	}
	rl.recordFailure("172.16.0.1:1")
	require.LessOrEqual(t, len(rl.failures), authRateMaxIPs)
}

// --- event bridge tests ---

func TestEventBridgeForwardsLifecycleEvents(t *testing.T) {
	engine := bot.New(nil, config.BotConfig{}, config.KnowledgeConfig{}, nil, nil)
	srv := New(config.Defaults(), engine, nil)
	require.NotNil(t, srv)

	for _, event := range broadcastEvents {
		require.Equal(t, 1, engine.Hooks().Count(event), event)
	}

	// With no clients connected the bridge is a no-op.
	engine.Hooks().Emit(context.Background(), hooks.EventKnowledgeAdded, map[string]any{"id": "k1"})
	require.Zero(t, srv.clients.Count())
}

// --- config path allowlist tests ---

func TestIsSafeConfigPath(t *testing.T) {
	safe := []string{
		"gateway.port",
		"gateway.bind",
		"gateway.allowedOrigins",
		"bot.name",
		"bot.clarifyThreshold",
		"knowledge.seedFiles",
		"session.scope",
		"logging.level",
	}
	for _, p := range safe {
		require.True(t, isSafeConfigPath(p), p)
	}

	unsafe := []string{
		"gateway.auth.token",
		"gateway.auth.password",
		"gateway.tls.keyPath",
		"channels.irc.password",
		"gateway",
	}
	for _, p := range unsafe {
		require.False(t, isSafeConfigPath(p), p)
	}
}
