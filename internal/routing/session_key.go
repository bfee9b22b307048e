package routing

import "github.com/soyeahso/parley/internal/domain"

// Session scopes. Per-sender keeps one dialogue per person even in group
// chats; per-chat shares one dialogue across the whole chat.
const (
	ScopePerSender = "per-sender"
	ScopePerChat   = "per-chat"
)

// ResolveSessionKey derives the session key for an inbound message under
// the configured scope. Unknown scopes fall back to per-sender.
func ResolveSessionKey(scope string, msg domain.InboundMessage) domain.SessionKey {
	key := domain.SessionKey{
		ChannelID: msg.ChannelID,
		AccountID: msg.AccountID,
		ChatID:    msg.ChatID,
	}
	if scope != ScopePerChat {
		key.SenderID = msg.From
	}
	return key
}
