package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchModel "github.com/clubdesk/matchday/internal/match/model"
	"github.com/clubdesk/matchday/internal/testutil"
)

type staticReader struct {
	matches map[string]*matchModel.Match
}

func (r staticReader) GetMatch(_ context.Context, id string) (*matchModel.Match, error) {
	if m, ok := r.matches[id]; ok {
		return m, nil
	}
	return nil, matchModel.ErrMatchNotFound
}

// changingReader commits a goal while the first load is in flight and
// broadcasts it before the caller could have subscribed.
type changingReader struct {
	hub *Hub

	mu    sync.Mutex
	match matchModel.Match
	loads int
}

func (r *changingReader) GetMatch(_ context.Context, id string) (*matchModel.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.match.ID {
		return nil, matchModel.ErrMatchNotFound
	}
	loaded := r.match
	r.loads++
	if r.loads == 1 {
		r.match.ScoreHome++
		updated := r.match
		r.hub.PublishMatch(&updated)
	}
	return &loaded, nil
}

func startServer(t *testing.T, hub *Hub, reader MatchReader) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/matches/:id/live", hub.Handler(reader))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, matchID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/matches/" + matchID + "/live"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, sonic.Unmarshal(data, &msg))
	return msg
}

func TestHub_StreamsSnapshots(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	t.Cleanup(hub.Close)
	match := &matchModel.Match{ID: "m1", HomeTeamID: "h", AwayTeamID: "a", Status: matchModel.StatusLive, Events: []matchModel.Event{}}
	srv := startServer(t, hub, staticReader{matches: map[string]*matchModel.Match{"m1": match}})

	conn := dial(t, srv, "m1")

	first := readMessage(t, conn)
	assert.Equal(t, MessageTypeMatch, first.Type)
	require.NotNil(t, first.Match)
	assert.Equal(t, "m1", first.Match.ID)
	assert.Zero(t, first.Match.ScoreHome)
	assert.Equal(t, 1, hub.Subscribers("m1"))

	hub.PublishMatch(&matchModel.Match{ID: "other", ScoreHome: 7})
	hub.PublishMatch(&matchModel.Match{ID: "m1", HomeTeamID: "h", AwayTeamID: "a", Status: matchModel.StatusLive, ScoreHome: 1})

	next := readMessage(t, conn)
	assert.Equal(t, "m1", next.Match.ID)
	assert.Equal(t, 1, next.Match.ScoreHome)
}

func TestHub_FirstSnapshotIncludesChangeDuringConnect(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	t.Cleanup(hub.Close)
	reader := &changingReader{hub: hub, match: matchModel.Match{ID: "m1", Status: matchModel.StatusLive, Events: []matchModel.Event{}}}
	srv := startServer(t, hub, reader)

	conn := dial(t, srv, "m1")

	first := readMessage(t, conn)
	require.NotNil(t, first.Match)
	assert.Equal(t, 1, first.Match.ScoreHome)
}

func TestHub_PrimeSkippedAfterBroadcast(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	sub := &subscriber{matchID: "m1", send: make(chan []byte, 2)}
	require.True(t, hub.add(sub))

	hub.PublishMatch(&matchModel.Match{ID: "m1", ScoreHome: 2})
	hub.prime(sub, []byte(`{"type":"match","match":{"id":"m1","scoreHome":1}}`))

	require.Len(t, sub.send, 1)
	payload := <-sub.send
	assert.Contains(t, string(payload), `"scoreHome":2`)

	hub.remove(sub)
	hub.prime(sub, []byte(`{}`))
}

func TestHub_PublishDeleted(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	t.Cleanup(hub.Close)
	match := &matchModel.Match{ID: "m1", Events: []matchModel.Event{}}
	srv := startServer(t, hub, staticReader{matches: map[string]*matchModel.Match{"m1": match}})

	conn := dial(t, srv, "m1")
	readMessage(t, conn)
	require.Equal(t, 1, hub.Subscribers("m1"))

	hub.PublishDeleted("other")
	hub.PublishDeleted("m1")

	msg := readMessage(t, conn)
	assert.Equal(t, MessageTypeDeleted, msg.Type)
	assert.Equal(t, "m1", msg.MatchID)
	assert.Nil(t, msg.Match)
	assert.Zero(t, hub.Subscribers("m1"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNoStatusReceived), "unexpected error: %v", err)
}

func TestHub_UnknownMatch(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	srv := startServer(t, hub, staticReader{})

	resp, err := http.Get(srv.URL + "/api/matches/nope/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, hub.Subscribers("nope"))
}

func TestHub_ClientDisconnectUnsubscribes(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	match := &matchModel.Match{ID: "m1"}
	srv := startServer(t, hub, staticReader{matches: map[string]*matchModel.Match{"m1": match}})

	conn := dial(t, srv, "m1")
	readMessage(t, conn)
	require.Equal(t, 1, hub.Subscribers("m1"))

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Subscribers("m1") == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestHub_DropsSlowSubscriber(t *testing.T) {
	hub := NewHub(Config{SendBuffer: 1}, testutil.Logger(t))
	sub := &subscriber{matchID: "m1", send: make(chan []byte, 1)}
	require.True(t, hub.add(sub))

	hub.PublishMatch(&matchModel.Match{ID: "m1", ScoreHome: 1})
	assert.Equal(t, 1, hub.Subscribers("m1"))

	hub.PublishMatch(&matchModel.Match{ID: "m1", ScoreHome: 2})
	assert.Zero(t, hub.Subscribers("m1"))

	payload, ok := <-sub.send
	require.True(t, ok)
	assert.Contains(t, string(payload), `"scoreHome":1`)
	_, ok = <-sub.send
	assert.False(t, ok)

	hub.remove(sub)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(DefaultConfig(), testutil.Logger(t))
	sub := &subscriber{matchID: "m1", send: make(chan []byte, 1)}
	require.True(t, hub.add(sub))

	hub.Close()
	hub.Close()

	_, ok := <-sub.send
	assert.False(t, ok)
	assert.False(t, hub.add(&subscriber{matchID: "m1", send: make(chan []byte, 1)}))
	hub.PublishMatch(&matchModel.Match{ID: "m1"})
}

func TestHub_CheckOrigin(t *testing.T) {
	hub := NewHub(Config{AllowedOrigins: []string{"http://localhost:3000"}}, testutil.Logger(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, hub.checkOrigin(req))

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, hub.checkOrigin(req))

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, hub.checkOrigin(req))
}
