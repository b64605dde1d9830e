// Package server exposes the world over a WebSocket endpoint so an external
// viewer can watch the scene. Every published frame is fanned out as one JSON
// message per connected client; slow clients are dropped rather than allowed
// to stall the tick loop.
package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/scenelink/scenelink/internal/core/debug"
	"github.com/scenelink/scenelink/internal/core/observability/log"
	"github.com/scenelink/scenelink/internal/core/world"
)

// Frame is one published view of the world: the entity snapshot plus the
// debug line segments drained since the previous frame.
type Frame struct {
	world.Snapshot
	Lines []debug.Segment `json:"lines,omitempty"`
}

// Config holds viewer configuration.
type Config struct {
	ListenAddr     string
	MaxClients     int
	WriteTimeout   time.Duration
	SendBufferSize int
}

// DefaultConfig returns default viewer configuration.
func DefaultConfig() Config {
	return Config{
		ListenAddr:     "127.0.0.1:8090",
		MaxClients:     32,
		WriteTimeout:   5 * time.Second,
		SendBufferSize: 16,
	}
}

type viewerClient struct {
	id     uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	active int32
}

// Viewer is the WebSocket scene broadcaster.
type Viewer struct {
	config   Config
	logger   log.Log
	upgrader websocket.Upgrader

	listener   net.Listener
	httpServer *http.Server

	clients     sync.Map // map[uuid.UUID]*viewerClient
	clientCount int64

	running int32
	closed  int32

	workerGroup sync.WaitGroup
}

// NewViewer creates a viewer that is not yet listening.
func NewViewer(config Config, logger log.Log) *Viewer {
	return &Viewer{
		config: config,
		logger: logger.With(log.String("component", "viewer")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Start begins accepting viewer connections on /scene.
func (v *Viewer) Start(_ context.Context) error {
	if atomic.LoadInt32(&v.closed) == 1 {
		return ErrViewerClosed
	}
	if !atomic.CompareAndSwapInt32(&v.running, 0, 1) {
		return ErrViewerAlreadyRunning
	}

	listener, err := net.Listen("tcp", v.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&v.running, 0)
		v.logger.Error("Failed to create listener", log.Err(err))
		return err
	}
	v.listener = listener

	mux := http.NewServeMux()
	mux.HandleFunc("/scene", v.handleScene)

	v.httpServer = &http.Server{Handler: mux}

	go func() {
		if err := v.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			v.logger.Error("Viewer listener failed", log.Err(err))
		}
	}()

	v.logger.Info("Viewer listening", log.String("addr", listener.Addr().String()))
	return nil
}

// Addr returns the bound listen address once started.
func (v *Viewer) Addr() string {
	if v.listener == nil {
		return ""
	}
	return v.listener.Addr().String()
}

// Stop shuts the listener down and disconnects every client.
func (v *Viewer) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&v.running, 1, 0) {
		return ErrViewerNotRunning
	}

	v.logger.Info("Stopping viewer")

	if v.httpServer != nil {
		_ = v.httpServer.Shutdown(ctx)
	}

	v.clients.Range(func(_, value interface{}) bool {
		if client, ok := value.(*viewerClient); ok {
			v.dropClient(client)
		}
		return true
	})

	v.workerGroup.Wait()

	v.logger.Info("Viewer stopped")
	return nil
}

// Close stops the viewer and releases its resources.
func (v *Viewer) Close() error {
	if !atomic.CompareAndSwapInt32(&v.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&v.running) == 1 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = v.Stop(ctx)
	}
	return nil
}

// ClientCount returns the number of connected viewers.
func (v *Viewer) ClientCount() int64 {
	return atomic.LoadInt64(&v.clientCount)
}

// Publish encodes a frame once and fans it out. A client whose send buffer
// is full gets dropped.
func (v *Viewer) Publish(frame Frame) error {
	if atomic.LoadInt32(&v.running) != 1 {
		return ErrViewerNotRunning
	}
	if atomic.LoadInt64(&v.clientCount) == 0 {
		return nil
	}

	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	v.clients.Range(func(_, value interface{}) bool {
		client, ok := value.(*viewerClient)
		if !ok || atomic.LoadInt32(&client.active) != 1 {
			return true
		}
		select {
		case client.send <- payload:
		default:
			v.logger.Warn("Dropping slow viewer client",
				log.String("client_id", client.id.String()))
			v.dropClient(client)
		}
		return true
	})

	return nil
}

func (v *Viewer) handleScene(w http.ResponseWriter, r *http.Request) {
	if int(atomic.LoadInt64(&v.clientCount)) >= v.config.MaxClients {
		http.Error(w, "too many viewers", http.StatusServiceUnavailable)
		return
	}

	conn, err := v.upgrader.Upgrade(w, r, nil)
	if err != nil {
		v.logger.Error("Upgrade failed", log.Err(err))
		return
	}

	client := &viewerClient{
		id:     uuid.New(),
		conn:   conn,
		send:   make(chan []byte, v.config.SendBufferSize),
		done:   make(chan struct{}),
		active: 1,
	}

	v.clients.Store(client.id, client)
	atomic.AddInt64(&v.clientCount, 1)

	v.logger.Info("Viewer client connected",
		log.String("client_id", client.id.String()),
		log.String("remote_addr", conn.RemoteAddr().String()),
		log.Int64("total_clients", atomic.LoadInt64(&v.clientCount)))

	v.workerGroup.Add(2)
	go v.writeLoop(client)
	go v.readLoop(client)
}

// writeLoop drains the client's send channel onto the socket.
func (v *Viewer) writeLoop(client *viewerClient) {
	defer v.workerGroup.Done()

	for {
		select {
		case payload := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(v.config.WriteTimeout))
			if err := client.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				if atomic.LoadInt32(&client.active) == 1 {
					v.logger.Debug("Viewer write failed",
						log.String("client_id", client.id.String()), log.Err(err))
				}
				v.dropClient(client)
				return
			}
		case <-client.done:
			return
		}
	}
}

// readLoop consumes inbound messages so pings are answered and the close
// handshake is observed. Viewers never send application data.
func (v *Viewer) readLoop(client *viewerClient) {
	defer v.workerGroup.Done()
	defer v.dropClient(client)

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (v *Viewer) dropClient(client *viewerClient) {
	if !atomic.CompareAndSwapInt32(&client.active, 1, 0) {
		return
	}

	v.clients.Delete(client.id)
	atomic.AddInt64(&v.clientCount, -1)
	close(client.done)
	_ = client.conn.Close()

	v.logger.Info("Viewer client disconnected",
		log.String("client_id", client.id.String()),
		log.Int64("total_clients", atomic.LoadInt64(&v.clientCount)))
}
