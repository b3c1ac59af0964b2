package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/game"
	"github.com/vovakirdan/tui-snake/internal/history"
	"github.com/vovakirdan/tui-snake/internal/spectate"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func newTestRouter(t *testing.T) (http.Handler, *history.Service, *spectate.Hub) {
	t.Helper()
	svc := history.NewService(config.DefaultHistoryPolicy(), storage.NewMemory(), nil)
	hub := spectate.NewHub(nil)
	t.Cleanup(hub.Close)

	r := NewRouter(Options{
		History:      svc,
		Difficulties: config.DefaultDifficultyTable(),
		Hub:          hub,
	})
	return r, svc, hub
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := get(t, r, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHistoryEndpoint(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	ctx := context.Background()

	rec := get(t, r, "/api/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	_, _, err := svc.RecordGameOver(ctx, 4, config.DifficultyEasy)
	require.NoError(t, err)
	_, _, err = svc.RecordGameOver(ctx, 9, config.DifficultyHard)
	require.NoError(t, err)

	rec = get(t, r, "/api/history")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var entries []history.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, 9, entries[0].Score)
	assert.Equal(t, "Hard", entries[0].Difficulty)
}

func TestStatsEndpoint(t *testing.T) {
	r, svc, _ := newTestRouter(t)
	ctx := context.Background()

	svc.RecordGameOver(ctx, 4, config.DifficultyNormal)
	svc.RecordGameOver(ctx, 8, config.DifficultyNormal)

	rec := get(t, r, "/api/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats []StatsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Len(t, stats, 1)
	assert.Equal(t, "Normal", stats[0].Difficulty)
	assert.Equal(t, 2, stats[0].Games)
	assert.Equal(t, 8, stats[0].Best)
	assert.InDelta(t, 6.0, stats[0].Average, 1e-9)
}

func TestStatsWithoutJournal(t *testing.T) {
	dir := t.TempDir()
	backend, err := storage.OpenJSON(dir + "/history.json")
	require.NoError(t, err)
	svc := history.NewService(config.DefaultHistoryPolicy(), backend, nil)

	r := NewRouter(Options{History: svc, Difficulties: config.DefaultDifficultyTable()})
	rec := get(t, r, "/api/stats")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestDifficultiesEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := get(t, r, "/api/difficulties")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []DifficultyView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 3)
	assert.Equal(t, config.DifficultyEasy, views[0].Name)
	assert.Equal(t, "Normal", views[1].Label)
	assert.Equal(t, 150, views[1].TickIntervalMS)
	assert.Equal(t, 25, views[2].BoardSize)
}

func TestMethodNotAllowed(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/history", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSpectateRoute(t *testing.T) {
	r, _, hub := newTestRouter(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/spectate"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, time.Second, 10*time.Millisecond)

	e := game.New(config.DefaultDifficultyTable(), 3)
	e.Start(config.DifficultyEasy)
	hub.Publish("zoe", e.Snapshot())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"session":"zoe"`)
}

func TestServerStartStop(t *testing.T) {
	s := NewServer(Options{Addr: "127.0.0.1:0", Difficulties: config.DefaultDifficultyTable()})
	assert.Equal(t, "127.0.0.1:0", s.Addr())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Give ListenAndServe a moment to bind before shutting down.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}
