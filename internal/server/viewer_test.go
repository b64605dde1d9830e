package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenelink/scenelink/internal/core/debug"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/internal/core/world"
	"github.com/scenelink/scenelink/pkg/vec"
)

func startViewer(t *testing.T, config Config) *Viewer {
	t.Helper()
	config.ListenAddr = "127.0.0.1:0"
	v := NewViewer(config, log.NewNop())
	require.NoError(t, v.Start(context.Background()))
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func dialViewer(t *testing.T, v *Viewer) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+v.Addr()+"/scene", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitForClients(t *testing.T, v *Viewer, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for v.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count stuck at %d, want %d", v.ClientCount(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestViewer_StartStop(t *testing.T) {
	v := startViewer(t, DefaultConfig())

	assert.NotEmpty(t, v.Addr())
	assert.ErrorIs(t, v.Start(context.Background()), ErrViewerAlreadyRunning)

	require.NoError(t, v.Stop(context.Background()))
	assert.ErrorIs(t, v.Stop(context.Background()), ErrViewerNotRunning)
}

func TestViewer_PublishRequiresRunning(t *testing.T) {
	v := NewViewer(DefaultConfig(), log.NewNop())
	assert.ErrorIs(t, v.Publish(Frame{}), ErrViewerNotRunning)
}

func TestViewer_BroadcastsFrames(t *testing.T) {
	v := startViewer(t, DefaultConfig())
	conn := dialViewer(t, v)
	waitForClients(t, v, 1)

	frame := Frame{
		Snapshot: world.Snapshot{
			Tick: 42,
			Entities: []world.EntityFrame{
				{ID: 7, Kind: "soldier", Node: "mesh", Position: vec.Vector3{X: 1, Y: 2, Z: 3}, Label: "leader"},
			},
		},
		Lines: []debug.Segment{
			{From: vec.Vector3{}, To: vec.Vector3{X: 1}},
		},
	}
	require.NoError(t, v.Publish(frame))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var got Frame
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, uint64(42), got.Tick)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, "soldier", got.Entities[0].Kind)
	assert.Equal(t, "leader", got.Entities[0].Label)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, vec.Vector3{X: 1}, got.Lines[0].To)
}

func TestViewer_ClientDisconnect(t *testing.T) {
	v := startViewer(t, DefaultConfig())
	conn := dialViewer(t, v)
	waitForClients(t, v, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, v, 0)

	// Publishing into an empty room is a no-op, not an error.
	assert.NoError(t, v.Publish(Frame{}))
}

func TestViewer_RejectsPastMaxClients(t *testing.T) {
	config := DefaultConfig()
	config.MaxClients = 1
	v := startViewer(t, config)

	dialViewer(t, v)
	waitForClients(t, v, 1)

	_, _, err := websocket.DefaultDialer.Dial("ws://"+v.Addr()+"/scene", nil)
	assert.Error(t, err, "the second viewer is turned away")
}
