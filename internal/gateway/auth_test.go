package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soyeahso/parley/internal/config"
)

// --- ResolveAuth tests ---

func TestResolveAuthDefaultsToToken(t *testing.T) {
	auth := ResolveAuth(config.GatewayAuth{Token: "secret"})
	require.Equal(t, "token", auth.Mode)
	require.Equal(t, "secret", auth.Token)
}

func TestResolveAuthPasswordImpliesPasswordMode(t *testing.T) {
	auth := ResolveAuth(config.GatewayAuth{Password: "hunter2"})
	require.Equal(t, "password", auth.Mode)
}

func TestResolveAuthEnvFallback(t *testing.T) {
	t.Setenv("PARLEY_GATEWAY_TOKEN", "from-env")
	auth := ResolveAuth(config.GatewayAuth{Mode: "token"})
	require.Equal(t, "from-env", auth.Token)
}

func TestResolveAuthConfigBeatsEnv(t *testing.T) {
	t.Setenv("PARLEY_GATEWAY_TOKEN", "from-env")
	auth := ResolveAuth(config.GatewayAuth{Mode: "token", Token: "from-config"})
	require.Equal(t, "from-config", auth.Token)
}

// --- Authorize tests ---

func TestAuthorizeToken(t *testing.T) {
	server := ResolvedAuth{Mode: "token", Token: "secret"}

	res := Authorize(server, &ConnectAuth{Token: "secret"})
	require.True(t, res.OK)
	require.Equal(t, "token", res.Method)

	res = Authorize(server, &ConnectAuth{Token: "wrong"})
	require.False(t, res.OK)
	require.Equal(t, "token_mismatch", res.Reason)
}

func TestAuthorizePassword(t *testing.T) {
	server := ResolvedAuth{Mode: "password", Password: "hunter2"}

	res := Authorize(server, &ConnectAuth{Password: "hunter2"})
	require.True(t, res.OK)
	require.Equal(t, "password", res.Method)

	res = Authorize(server, &ConnectAuth{Password: "nope"})
	require.False(t, res.OK)
}

func TestAuthorizeNoCredentials(t *testing.T) {
	server := ResolvedAuth{Mode: "token", Token: "secret"}

	res := Authorize(server, nil)
	require.False(t, res.OK)

	res = Authorize(server, &ConnectAuth{})
	require.False(t, res.OK)
	require.Equal(t, "token required", res.Reason)
}

func TestAuthorizeUnconfiguredServer(t *testing.T) {
	res := Authorize(ResolvedAuth{Mode: "token"}, &ConnectAuth{Token: "anything"})
	require.False(t, res.OK)
	require.Equal(t, "server token not configured", res.Reason)
}

func TestAuthorizeUnknownMode(t *testing.T) {
	res := Authorize(ResolvedAuth{Mode: "mtls"}, &ConnectAuth{Token: "x"})
	require.False(t, res.OK)
}

// --- safeEqual tests ---

func TestSafeEqual(t *testing.T) {
	require.True(t, safeEqual("abc", "abc"))
	require.False(t, safeEqual("abc", "abd"))
	require.False(t, safeEqual("abc", "abcd"))
	require.False(t, safeEqual("", "a"))
	require.True(t, safeEqual("", ""))
}
