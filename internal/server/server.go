// Package server runs the TCP accept loop described in SPEC_FULL §4.8/§5:
// one goroutine per connection, serially reading RS/EOT-framed requests,
// with a single mutex around Store/Engine dispatch so concurrent
// connections never observe a torn Store.
package server

import (
	"bufio"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lexiserve/lexiserve/internal/config"
	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/store"
	"github.com/lexiserve/lexiserve/internal/wire"
)

// Server accepts connections and dispatches their requests against a
// shared Store/Engine pair.
type Server struct {
	store  *store.Store
	engine *engine.Engine
	cfg    *config.Watcher

	mu           sync.Mutex
	requestCount int64

	listener net.Listener
}

// New builds a Server over s/e, configured by cfg.
func New(s *store.Store, e *engine.Engine, cfg *config.Watcher) *Server {
	return &Server{store: s, engine: e, cfg: cfg}
}

// ListenAndServe binds addr and accepts connections until the listener is
// closed.
func (srv *Server) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	srv.listener = ln
	log.Infof("listening on %s", addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if isClosed(err) {
				return nil
			}
			log.Warnf("accept error: %v", err)
			continue
		}
		go srv.handleConn(conn)
	}
}

// Close stops accepting new connections.
func (srv *Server) Close() error {
	if srv.listener == nil {
		return nil
	}
	return srv.listener.Close()
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed)
}

func (srv *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	log.Debugf("connection from %s", conn.RemoteAddr())

	reader := bufio.NewReader(conn)
	for {
		command, fields, err := wire.ReadRequest(reader)
		if err != nil {
			if err != io.EOF {
				log.Debugf("read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		body := srv.dispatch(command, fields)
		if err := wire.WriteResponse(conn, body); err != nil {
			log.Debugf("write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

// dispatch serializes Store/Engine access across every connection, per
// SPEC_FULL §5's "serial across connections for Store mutation and query
// dispatch" scheduling model, and counts requests. It does not reload
// config: the fsnotify watcher passed as cfg keeps the config current, and
// the Dispatcher reads it on each request.
func (srv *Server) dispatch(command string, fields []string) string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.requestCount++
	d := &wire.Dispatcher{Store: srv.store, Engine: srv.engine, Cfg: srv.cfg}
	return d.Dispatch(command, fields)
}
