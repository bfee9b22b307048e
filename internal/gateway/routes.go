package gateway

import (
	"net/http"
	"strings"
	"time"

	"github.com/soyeahso/parley/internal/config"
	"github.com/soyeahso/parley/internal/domain"
	"github.com/soyeahso/parley/internal/knowledge"
)

// registerHTTPRoutes sets up the HTTP endpoints.
func (s *Server) registerHTTPRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("/", handleNotFound)
}

// safeConfigPrefixes lists config paths writable over RPC. Everything else,
// auth credentials in particular, stays read-only from the wire.
var safeConfigPrefixes = []string{
	"gateway.port",
	"gateway.bind",
	"gateway.customBindHost",
	"gateway.allowedOrigins",
	"bot.",
	"knowledge.",
	"session.",
	"logging.",
}

func isSafeConfigPath(path string) bool {
	for _, prefix := range safeConfigPrefixes {
		if strings.HasSuffix(prefix, ".") {
			if strings.HasPrefix(path, prefix) {
				return true
			}
			continue
		}
		if path == prefix {
			return true
		}
	}
	return false
}

// registerRPCHandlers wires up all built-in RPC methods.
func (s *Server) registerRPCHandlers() {
	s.Handle("health", s.rpcHealth)
	s.Handle("config.get", s.rpcConfigGet)
	s.Handle("config.set", s.rpcConfigSet)
	s.Handle("channels.status", s.rpcChannelsStatus)
	s.Handle("session.list", s.rpcSessionList)
	s.Handle("session.clear", s.rpcSessionClear)
	s.Handle("chat.send", s.rpcChatSend)
	s.Handle("knowledge.add", s.rpcKnowledgeAdd)
	s.Handle("knowledge.query", s.rpcKnowledgeQuery)
	s.Handle("skills.list", s.rpcSkillsList)
}

func (s *Server) rpcHealth(rc *RequestContext) {
	sessions := 0
	if list, err := s.engine.Sessions().List(rc.Context()); err == nil {
		sessions = len(list)
	}
	rc.Respond(HealthResponse{
		Status:        "ok",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		Clients:       s.clients.Count(),
		Sessions:      sessions,
		Skills:        len(s.engine.Skills().List()),
	})
}

func (s *Server) rpcConfigGet(rc *RequestContext) {
	var params struct {
		Path string `json:"path,omitempty"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Path == "" {
		rc.Respond(map[string]any{"config": s.configRaw})
		return
	}

	path, err := config.ParseConfigPath(params.Path)
	if err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	value, ok := config.GetValueAtPath(s.configRaw, path)
	if !ok {
		rc.RespondError("not_found", "no value at path: "+params.Path)
		return
	}
	rc.Respond(map[string]any{"path": params.Path, "value": value})
}

func (s *Server) rpcConfigSet(rc *RequestContext) {
	var params struct {
		Path  string `json:"path"`
		Value any    `json:"value"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if params.Path == "" {
		rc.RespondError("invalid_params", "path is required")
		return
	}
	if !isSafeConfigPath(params.Path) {
		rc.RespondError("forbidden", "config path not writable over RPC: "+params.Path)
		return
	}

	path, err := config.ParseConfigPath(params.Path)
	if err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	config.SetValueAtPath(s.configRaw, path, params.Value)

	if s.configPath != "" {
		if err := config.SaveRaw(s.configPath, s.configRaw); err != nil {
			rc.RespondError("internal_error", "failed to persist config: "+err.Error())
			return
		}
	}

	s.log.Info().Str("path", params.Path).Msg("config updated via rpc")
	rc.Respond(map[string]any{"path": params.Path, "value": params.Value})
}

func (s *Server) rpcChannelsStatus(rc *RequestContext) {
	if s.channels == nil {
		rc.Respond(map[string]any{"channels": []domain.ChannelStatus{}})
		return
	}
	rc.Respond(map[string]any{"channels": s.channels.Statuses()})
}

// sessionSummary is the per-session shape returned by session.list. Full
// history stays server-side.
type sessionSummary struct {
	ID           string    `json:"id"`
	State        string    `json:"state"`
	TurnCount    int       `json:"turnCount"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActiveAt time.Time `json:"lastActiveAt"`
}

func (s *Server) rpcSessionList(rc *RequestContext) {
	ctx := rc.Context()
	sessions, err := s.engine.Sessions().List(ctx)
	if err != nil {
		rc.RespondError("internal_error", err.Error())
		return
	}
	summaries := make([]sessionSummary, 0, len(sessions))
	for _, sess := range sessions {
		summaries = append(summaries, sessionSummary{
			ID:           sess.ID,
			State:        string(sess.State),
			TurnCount:    sess.TurnCount,
			CreatedAt:    sess.CreatedAt,
			LastActiveAt: sess.LastActiveAt,
		})
	}
	rc.Respond(map[string]any{"sessions": summaries})
}

func (s *Server) rpcSessionClear(rc *RequestContext) {
	var params struct {
		SessionID string `json:"sessionId"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if params.SessionID == "" {
		rc.RespondError("invalid_params", "sessionId is required")
		return
	}
	if err := s.engine.ClearSession(rc.Context(), params.SessionID); err != nil {
		rc.RespondError("internal_error", err.Error())
		return
	}
	rc.Respond(map[string]any{"cleared": params.SessionID})
}

func (s *Server) rpcChatSend(rc *RequestContext) {
	var params struct {
		SessionID string `json:"sessionId,omitempty"`
		Message   string `json:"message"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if strings.TrimSpace(params.Message) == "" {
		rc.RespondError("invalid_params", "message is required")
		return
	}
	sessionID := params.SessionID
	if sessionID == "" {
		sessionID = "gateway:" + rc.Client.ConnID
	}

	result, err := s.engine.Process(rc.Context(), sessionID, params.Message)
	if err != nil {
		rc.RespondError("internal_error", err.Error())
		return
	}
	rc.Respond(result)
}

func (s *Server) rpcKnowledgeAdd(rc *RequestContext) {
	var params struct {
		Topic    string   `json:"topic"`
		Answer   string   `json:"answer"`
		Keywords []string `json:"keywords,omitempty"`
		Category string   `json:"category,omitempty"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if strings.TrimSpace(params.Topic) == "" || strings.TrimSpace(params.Answer) == "" {
		rc.RespondError("invalid_params", "topic and answer are required")
		return
	}

	stored := s.engine.AddKnowledge(rc.Context(), knowledge.Entry{
		Topic:    params.Topic,
		Answer:   params.Answer,
		Keywords: params.Keywords,
		Category: params.Category,
	})
	rc.Respond(stored)
}

func (s *Server) rpcKnowledgeQuery(rc *RequestContext) {
	var params struct {
		Query string `json:"query"`
	}
	if err := rc.Params(&params); err != nil {
		rc.RespondError("invalid_params", err.Error())
		return
	}
	if strings.TrimSpace(params.Query) == "" {
		rc.RespondError("invalid_params", "query is required")
		return
	}

	result := s.engine.Knowledge().Query(params.Query)
	if result == nil {
		rc.Respond(map[string]any{"found": false})
		return
	}
	rc.Respond(map[string]any{
		"found":   true,
		"entry":   result.Entry,
		"score":   result.Score,
		"related": result.Related,
	})
}

func (s *Server) rpcSkillsList(rc *RequestContext) {
	rc.Respond(map[string]any{"skills": s.engine.Skills().List()})
}
