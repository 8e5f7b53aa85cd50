package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func startTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer("", testLogger(), opts...)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Stop(context.Background())
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req any) Response {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(req))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestEvaluateMeasuresWithClock(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	srv := NewServer("", testLogger(), WithClock(clock))

	resp := srv.evaluate(Request{ID: "1", Cards: []string{"AS", "KS", "QS", "JS", "TS"}})
	assert.Equal(t, "Straight Flush", resp.Category)
	assert.Equal(t, int64(1), srv.evaluated.Load())
	assert.Equal(t, int64(0), srv.rejected.Load())
}

func TestServerHealth(t *testing.T) {
	t.Parallel()
	srv := NewServer("", testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.handleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestWaitForHealthy(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, WaitForHealthy(ctx, quartz.NewReal(), ts.URL))
}

func TestEvaluateOverWebSocket(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t)
	conn := dial(t, ts)

	tests := []struct {
		name string
		req  Request
		want Response
	}{
		{
			name: "plain hand",
			req:  Request{ID: "1", Cards: []string{"TD", "TC", "TH", "7C", "7D", "8C", "8S"}},
			want: Response{ID: "1", Cards: []string{"8S", "8C", "TC", "TD", "TH"}, Category: "Full House"},
		},
		{
			name: "wild hand",
			req:  Request{ID: "2", Cards: []string{"TD", "TC", "5H", "5C", "7C", "?R", "?B"}},
			want: Response{
				ID:          "2",
				Cards:       []string{"7C", "TS", "TC", "TD", "TH"},
				Category:    "Four of a Kind",
				Substitutes: map[string]string{"?R": "TH", "?B": "TS"},
			},
		},
		{
			name: "straight flush from joker",
			req:  Request{ID: "3", Cards: []string{"6C", "7C", "8C", "9C", "TC", "5C", "?B"}},
			want: Response{
				ID:          "3",
				Cards:       []string{"7C", "8C", "9C", "TC", "JC"},
				Category:    "Straight Flush",
				Substitutes: map[string]string{"?B": "JC"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, roundTrip(t, conn, tt.req))
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t)
	conn := dial(t, ts)

	resp := roundTrip(t, conn, Request{ID: "short", Cards: []string{"AS", "KS"}})
	assert.Equal(t, "short", resp.ID)
	assert.Empty(t, resp.Cards)
	assert.Contains(t, resp.Error, "invalid input")

	resp = roundTrip(t, conn, Request{ID: "bad", Cards: []string{"AS", "KS", "QS", "JS", "ZZ"}})
	assert.Contains(t, resp.Error, `"ZZ"`)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var malformed Response
	require.NoError(t, conn.ReadJSON(&malformed))
	assert.Contains(t, malformed.Error, "malformed request")

	// The connection stays usable after errors.
	resp = roundTrip(t, conn, Request{ID: "ok", Cards: []string{"AS", "KS", "QS", "JS", "TS"}})
	assert.Equal(t, "Straight Flush", resp.Category)
}

func TestMaxMessageSize(t *testing.T) {
	t.Parallel()
	_, ts := startTestServer(t, WithMaxMessageSize(64))
	conn := dial(t, ts)

	big := Request{ID: strings.Repeat("x", 200), Cards: []string{"AS", "KS", "QS", "JS", "TS"}}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(big))

	var resp Response
	err := conn.ReadJSON(&resp)
	require.Error(t, err, "oversized request closes the connection")
}

func TestStats(t *testing.T) {
	t.Parallel()
	srv, ts := startTestServer(t)
	conn := dial(t, ts)

	roundTrip(t, conn, Request{ID: "1", Cards: []string{"AS", "KS", "QS", "JS", "TS"}})
	roundTrip(t, conn, Request{ID: "2", Cards: []string{"AS"}})
	require.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	srv.handleStats(w, req)

	body := w.Body.String()
	assert.Contains(t, body, "Hands evaluated: 1")
	assert.Contains(t, body, "Hands rejected: 1")
	assert.Contains(t, body, "Connections: 1")
}

func TestStopClosesConnections(t *testing.T) {
	t.Parallel()
	srv, ts := startTestServer(t)
	conn := dial(t, ts)
	roundTrip(t, conn, Request{ID: "1", Cards: []string{"AS", "KS", "QS", "JS", "TS"}})

	require.NoError(t, srv.Stop(context.Background()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
