// Package live fans match snapshots out to WebSocket subscribers.
package live

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	matchModel "github.com/clubdesk/matchday/internal/match/model"
)

const (
	// MessageTypeMatch tags a full match snapshot on the wire.
	MessageTypeMatch = "match"
	// MessageTypeDeleted tells subscribers their match is gone. The
	// connection is closed right after it.
	MessageTypeDeleted = "deleted"
)

// Config holds connection settings of the live feed.
type Config struct {
	WriteTimeout   time.Duration
	PongTimeout    time.Duration
	PingInterval   time.Duration
	SendBuffer     int
	ReadLimit      int64
	AllowedOrigins []string
}

// DefaultConfig returns the default live feed settings.
func DefaultConfig() Config {
	return Config{
		WriteTimeout: 10 * time.Second,
		PongTimeout:  60 * time.Second,
		PingInterval: 50 * time.Second,
		SendBuffer:   16,
		ReadLimit:    512,
	}
}

// Message is the frame sent to subscribers.
type Message struct {
	Type    string            `json:"type"`
	Match   *matchModel.Match `json:"match,omitempty"`
	MatchID string            `json:"matchId,omitempty"`
}

type subscriber struct {
	matchID string
	send    chan []byte
	// published is set once a broadcast reached send.
	published atomic.Bool
}

// Hub keeps per-match subscriber sets. A subscriber whose buffer is full when
// a snapshot arrives is dropped.
type Hub struct {
	cfg    Config
	logger *zap.SugaredLogger

	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	closed bool
}

// NewHub creates a hub. Zero fields of cfg take their defaults.
func NewHub(cfg Config, logger *zap.SugaredLogger) *Hub {
	def := DefaultConfig()
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}
	if cfg.PongTimeout <= 0 {
		cfg.PongTimeout = def.PongTimeout
	}
	if cfg.PingInterval <= 0 || cfg.PingInterval >= cfg.PongTimeout {
		cfg.PingInterval = cfg.PongTimeout * 9 / 10
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = def.SendBuffer
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = def.ReadLimit
	}
	return &Hub{
		cfg:    cfg,
		logger: logger,
		subs:   make(map[string]map[*subscriber]struct{}),
	}
}

func encode(match *matchModel.Match) ([]byte, error) {
	return sonic.Marshal(Message{Type: MessageTypeMatch, Match: match})
}

// PublishMatch sends a snapshot of match to every subscriber of that match.
func (h *Hub) PublishMatch(match *matchModel.Match) {
	if match == nil {
		return
	}
	payload, err := encode(match)
	if err != nil {
		h.logger.Errorw("failed to encode match snapshot", "match_id", match.ID, "error", err)
		return
	}

	var slow []*subscriber
	h.mu.RLock()
	for sub := range h.subs[match.ID] {
		select {
		case sub.send <- payload:
			sub.published.Store(true)
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.logger.Warnw("dropping slow live subscriber", "match_id", match.ID)
		h.remove(sub)
	}
}

// PublishDeleted tells the subscribers of matchID that the match was deleted
// and disconnects them.
func (h *Hub) PublishDeleted(matchID string) {
	payload, err := sonic.Marshal(Message{Type: MessageTypeDeleted, MatchID: matchID})
	if err != nil {
		h.logger.Errorw("failed to encode match deletion", "match_id", matchID, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[matchID]
	if !ok {
		return
	}
	for sub := range set {
		select {
		case sub.send <- payload:
		default:
		}
		close(sub.send)
	}
	delete(h.subs, matchID)
	h.logger.Debugw("live subscribers released", "match_id", matchID, "subscribers", len(set))
}

// Subscribers returns the number of subscribers of a match.
func (h *Hub) Subscribers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[matchID])
}

// Close disconnects every subscriber. Later subscriptions are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for matchID, set := range h.subs {
		for sub := range set {
			close(sub.send)
		}
		delete(h.subs, matchID)
	}
}

// add registers sub and reports false once the hub is closed.
func (h *Hub) add(sub *subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	set, ok := h.subs[sub.matchID]
	if !ok {
		set = make(map[*subscriber]struct{})
		h.subs[sub.matchID] = set
	}
	set[sub] = struct{}{}
	return true
}

// prime queues the initial snapshot for a registered sub unless a broadcast
// got there first. Anything broadcast after registration is at least as new
// as payload.
func (h *Hub) prime(sub *subscriber, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub.matchID][sub]; !ok || sub.published.Load() {
		return
	}
	select {
	case sub.send <- payload:
	default:
	}
}

// remove unregisters sub and closes its send channel. Repeated calls are no-ops.
func (h *Hub) remove(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.matchID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	close(sub.send)
	if len(set) == 0 {
		delete(h.subs, sub.matchID)
	}
}
