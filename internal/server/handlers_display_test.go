package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lporras/gedeon/internal/app"
	"github.com/lporras/gedeon/internal/broadcast"
	"github.com/lporras/gedeon/internal/config"
	"github.com/lporras/gedeon/internal/domain"
)

func TestHandleDisplaySocket_UnknownSchedule(t *testing.T) {
	svc := &mockAppService{
		getScheduleFn: func(_ context.Context, _ uuid.UUID) (*domain.Schedule, error) {
			return nil, domain.ErrScheduleNotFound
		},
	}
	srv := newTestServer(t, svc)

	rec := doJSON(srv, http.MethodGet, "/ws/display/"+uuid.NewString(), "")
	assert.Equal(t, 404, rec.Code)
}

func TestHandleDisplaySocket_ConnectsDespiteDanglingEntry(t *testing.T) {
	// A schedule whose entries no longer resolve must still accept displays;
	// only schedule existence gates the upgrade.
	svc := &mockAppService{
		listEntriesFn: func(_ context.Context, _ uuid.UUID) ([]app.EntrySummary, error) {
			return nil, domain.ErrSongNotFound
		},
	}

	hub := broadcast.NewHub(clockwork.NewRealClock(), 10, nil, nil)
	t.Cleanup(hub.Stop)
	srv := NewServer(&config.Config{Port: "0"}, svc, hub, nil)

	ts := httptest.NewServer(srv.echo)
	t.Cleanup(ts.Close)

	scheduleID := uuid.New()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/display/" + scheduleID.String()
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	topic := domain.TopicFor(scheduleID)
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(topic) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 1, hub.ClientCount(topic))
}

func TestHandleDisplaySocket_ReceivesBroadcasts(t *testing.T) {
	hub := broadcast.NewHub(clockwork.NewRealClock(), 10, nil, nil)
	t.Cleanup(hub.Stop)

	srv := NewServer(&config.Config{Port: "0"}, &mockAppService{}, hub, nil)

	ts := httptest.NewServer(srv.echo)
	t.Cleanup(ts.Close)

	scheduleID := uuid.New()
	topic := domain.TopicFor(scheduleID)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/display/" + scheduleID.String()
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Wait for the hub registration to land before broadcasting.
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(topic) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount(topic))

	hub.Broadcast(topic, []byte(`{"action":"black"}`))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"black"}`, string(msg))
}

func TestHandleDisplaySocket_UnregistersOnDisconnect(t *testing.T) {
	hub := broadcast.NewHub(clockwork.NewRealClock(), 10, nil, nil)
	t.Cleanup(hub.Stop)

	srv := NewServer(&config.Config{Port: "0"}, &mockAppService{}, hub, nil)

	ts := httptest.NewServer(srv.echo)
	t.Cleanup(ts.Close)

	scheduleID := uuid.New()
	topic := domain.TopicFor(scheduleID)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/display/" + scheduleID.String()
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(topic) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Equal(t, 1, hub.ClientCount(topic))

	conn.Close()

	deadline = time.Now().Add(time.Second)
	for hub.ClientCount(topic) != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, 0, hub.ClientCount(topic))
}
