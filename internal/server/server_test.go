package server

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/lexiserve/lexiserve/internal/engine"
	"github.com/lexiserve/lexiserve/internal/store"
	"github.com/lexiserve/lexiserve/internal/wire"
)

func startTestServer(t *testing.T) (addr string, stop func()) {
	t.Helper()
	s := store.New(store.MinCapacity)
	e := engine.New(s, engine.DefaultCacheSize)
	srv := New(s, e, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	srv.listener = ln

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go srv.handleConn(conn)
		}
	}()

	return ln.Addr().String(), func() { ln.Close() }
}

func sendRequest(t *testing.T, addr, command string, fields []string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	frame := append([]byte{}, []byte(command)...)
	for _, f := range fields {
		frame = append(frame, wire.RS)
		frame = append(frame, []byte(f)...)
	}
	frame = append(frame, wire.EOT)
	if _, err := conn.Write(frame); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reader := bufio.NewReader(conn)
	resp, err := reader.ReadString(wire.EOT)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return strings.TrimSuffix(resp, string(wire.EOT))
}

func TestServerPing(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()
	if got := sendRequest(t, addr, "ping", nil); got != "PONG" {
		t.Fatalf("expected PONG, got %q", got)
	}
}

func TestServerInsertThenBestCompletions(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()

	insertResp := sendRequest(t, addr, "insert", []string{"hello help helicopter"})
	if !strings.Contains(insertResp, "Inserted 3 of 3 words") {
		t.Fatalf("unexpected insert response: %q", insertResp)
	}

	best := sendRequest(t, addr, "best-completions", []string{"hel"})
	if best == "" {
		t.Fatal("expected non-empty best-completions result")
	}
}

func TestServerHandlesConcurrentConnections(t *testing.T) {
	addr, stop := startTestServer(t)
	defer stop()
	sendRequest(t, addr, "insert", []string{"alpha beta gamma"})

	done := make(chan string, 2)
	go func() { done <- sendRequest(t, addr, "prefix", []string{"a"}) }()
	go func() { done <- sendRequest(t, addr, "prefix", []string{"b"}) }()

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for concurrent requests to complete")
		}
	}
}
