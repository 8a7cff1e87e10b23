package net

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"SlideBoard/internal/logging"
	"SlideBoard/internal/state"
)

// Path is where the websocket endpoint is mounted.
const Path = "/ws"

const (
	writeWait       = 10 * time.Second
	maxMessageSize  = 64 << 20
	shutdownTimeout = 5 * time.Second
)

// Peer is one connected session.
type Peer struct {
	ID   string
	conn *websocket.Conn
	mu   sync.Mutex
}

// send writes v as a JSON text message. gorilla connections allow one
// concurrent writer, so writes are serialized per peer.
func (p *Peer) send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(v)
}

// ConnectionManager tracks the sessions connected to a Server.
type ConnectionManager struct {
	peers map[string]*Peer
	mu    sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		peers: make(map[string]*Peer),
	}
}

func (cm *ConnectionManager) Add(p *Peer) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.peers[p.ID] = p
	logging.Logger().Info("peer connected", "session", p.ID, "remote", p.conn.RemoteAddr().String())
}

func (cm *ConnectionManager) Remove(p *Peer) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	delete(cm.peers, p.ID)
	logging.Logger().Info("peer disconnected", "session", p.ID)
}

// Len reports the number of connected sessions.
func (cm *ConnectionManager) Len() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.peers)
}

// Broadcast sends v to every session except exclude.
func (cm *ConnectionManager) Broadcast(v any, exclude string) {
	cm.mu.RLock()
	peers := make([]*Peer, 0, len(cm.peers))
	for id, p := range cm.peers {
		if id != exclude {
			peers = append(peers, p)
		}
	}
	cm.mu.RUnlock()

	for _, p := range peers {
		if err := p.send(v); err != nil {
			logging.Logger().Warn("broadcast failed", "session", p.ID, "err", err)
		}
	}
}

// closeAll closes every connection, ending their read loops.
func (cm *ConnectionManager) closeAll() {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	for _, p := range cm.peers {
		p.conn.Close()
	}
}

// Server exposes a shared scene over websocket. Every message a client
// sends is a Command and is answered by a Reply. After a command changes
// the scene, the other sessions receive a "changed" Event.
type Server struct {
	shared   *state.Shared
	upgrader websocket.Upgrader
	peers    *ConnectionManager
}

func NewServer(shared *state.Shared) *Server {
	return &Server{
		shared: shared,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		peers: NewConnectionManager(),
	}
}

// Peers returns the server's session registry.
func (s *Server) Peers() *ConnectionManager { return s.peers }

// Handler returns an http.Handler serving the websocket endpoint at Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Logger().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	p := &Peer{ID: uuid.NewString(), conn: conn}
	s.peers.Add(p)
	defer func() {
		s.peers.Remove(p)
		conn.Close()
	}()

	if err := p.send(Event{Type: TypeHello, Session: p.ID}); err != nil {
		return
	}
	s.readLoop(p)
}

func (s *Server) readLoop(p *Peer) {
	log := logging.Logger().With("session", p.ID)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read failed", "err", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			log.Debug("bad command", "err", err)
			if err := p.send(Reply{Type: TypeReply, Error: "net: bad command: " + err.Error()}); err != nil {
				return
			}
			continue
		}

		reply, changed := s.execute(cmd)
		if err := p.send(reply); err != nil {
			log.Warn("write failed", "err", err)
			return
		}
		if changed {
			s.peers.Broadcast(Event{Type: TypeChanged, Session: p.ID}, p.ID)
		}
	}
}

// execute runs cmd under the scene lock and reports whether the scene may
// have changed.
func (s *Server) execute(cmd Command) (Reply, bool) {
	var (
		reply Reply
		err   error
	)
	run := func(sc *state.Scene) { reply, err = dispatch(sc, cmd) }

	mutates := mutating[cmd.Op]
	if mutates {
		s.shared.Update(run)
	} else {
		s.shared.Do(run)
	}

	if err != nil {
		logging.Logger().Debug("command failed", "op", cmd.Op, "id", cmd.ID, "err", err)
		reply.OK = false
		reply.Error = err.Error()
		return reply, false
	}
	return reply, mutates
}

// ListenAndServe serves on addr until ctx is cancelled. If ready is not
// nil it receives the bound address once the listener is open.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(ln.Addr())
	}
	logging.Logger().Info("websocket server listening", "addr", ln.Addr().String(), "path", Path)

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.peers.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
