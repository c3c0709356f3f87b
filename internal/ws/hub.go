package ws

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"sync/atomic"
	"unicode/utf8"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/vladimirvolkov/freethrow/internal/game"
	"github.com/vladimirvolkov/freethrow/internal/middleware"
)

// Client frames are tiny; anything bigger is junk.
const readLimit = 1024

// nicknameJunk matches everything outside letters, digits, underscore,
// dash, space and cyrillic.
var nicknameJunk = regexp.MustCompile(`[^a-zA-Z0-9_\- \x{0400}-\x{04FF}]+`)

// sanitizeNickname strips disallowed characters and enforces a 2-12 rune
// length.
func sanitizeNickname(raw string) string {
	if !utf8.ValidString(raw) {
		return "Player"
	}
	cleaned := []rune(nicknameJunk.ReplaceAllString(raw, ""))
	if len(cleaned) < 2 {
		return "Player"
	}
	if len(cleaned) > 12 {
		cleaned = cleaned[:12]
	}
	return string(cleaned)
}

// RoomCreator starts a game for a freshly accepted connection.
type RoomCreator interface {
	CreateRoom(conn *Conn, mode game.Mode)
}

// HubStats holds live server metrics.
type HubStats struct {
	ActiveRooms      int64  `json:"activeRooms"`
	TotalConnections uint64 `json:"totalConnections"`
	RejectedFull     uint64 `json:"rejectedFull"`
}

type HubConfig struct {
	OriginPatterns []string
	DefaultMode    game.Mode
	MaxRooms       int64
}

type Hub struct {
	creator RoomCreator
	limiter *middleware.IPRateLimiter
	cfg     HubConfig

	activeRooms      atomic.Int64
	totalConnections atomic.Uint64
	rejectedFull     atomic.Uint64
}

func NewHub(creator RoomCreator, limiter *middleware.IPRateLimiter, cfg HubConfig) *Hub {
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = game.ModePower
	}
	return &Hub{
		creator: creator,
		limiter: limiter,
		cfg:     cfg,
	}
}

// Stats returns a snapshot of current server metrics.
func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveRooms:      h.activeRooms.Load(),
		TotalConnections: h.totalConnections.Load(),
		RejectedFull:     h.rejectedFull.Load(),
	}
}

// RoomEnded decrements the active room counter. Call when a room goroutine exits.
func (h *Hub) RoomEnded() {
	h.activeRooms.Add(-1)
}

func (h *Hub) mode(r *http.Request) (game.Mode, error) {
	q := r.URL.Query().Get("mode")
	if q == "" {
		return h.cfg.DefaultMode, nil
	}
	return game.ParseMode(q)
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	mode, err := h.mode(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ip := middleware.RealIP(r)
	if h.limiter != nil && !h.limiter.ConnectAllowed(ip) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.cfg.OriginPatterns) > 0 {
		acceptOpts.OriginPatterns = h.cfg.OriginPatterns
	}

	ws, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
		slog.Warn("ws accept failed", "ip", ip, "err", err)
		return
	}
	ws.SetReadLimit(readLimit)

	h.totalConnections.Add(1)
	conn := NewConn(ws, uuid.NewString(), ip, h.limiter)
	conn.Nickname = sanitizeNickname(r.URL.Query().Get("name"))
	slog.Info("new connection", "conn", conn.ID, "nickname", conn.Nickname, "ip", ip, "mode", mode, "total", h.totalConnections.Load())

	// the connection outlives the request context
	go conn.WriteLoop(context.Background())

	go func() {
		<-conn.Done()
		if h.limiter != nil {
			h.limiter.Disconnect(ip)
		}
	}()

	if !h.admit(conn) {
		return
	}
	h.creator.CreateRoom(conn, mode)

	// Keep the handler alive for the lifetime of the socket.
	<-conn.Done()
	slog.Info("connection closed", "conn", conn.ID)
}

// admit reserves a room slot for conn, or closes it when the server is full.
func (h *Hub) admit(conn *Conn) bool {
	if h.cfg.MaxRooms > 0 && h.activeRooms.Add(1) > h.cfg.MaxRooms {
		h.activeRooms.Add(-1)
		h.rejectedFull.Add(1)
		slog.Warn("max rooms reached, rejecting", "conn", conn.ID)
		conn.CloseWith(websocket.StatusTryAgainLater, "server full")
		return false
	}
	if h.cfg.MaxRooms <= 0 {
		h.activeRooms.Add(1)
	}
	return true
}
