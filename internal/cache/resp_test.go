package cache

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// redisAddr returns QUAYSIDE_TEST_REDIS_ADDR when set, otherwise the address
// of an in-process server speaking enough RESP2 for the cache.
func redisAddr(t *testing.T) string {
	t.Helper()
	if addr := os.Getenv("QUAYSIDE_TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := &respServer{entries: map[string]respEntry{}}
	go srv.serve(ln)
	t.Cleanup(func() { _ = ln.Close() })
	return ln.Addr().String()
}

type respEntry struct {
	value    string
	deadline time.Time
}

type respServer struct {
	mu      sync.Mutex
	entries map[string]respEntry
}

func (s *respServer) serve(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *respServer) handle(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	r := bufio.NewReader(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		if _, err := io.WriteString(conn, s.reply(args)); err != nil {
			return
		}
	}
}

func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(line, "*") {
		return nil, fmt.Errorf("unexpected %q", line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line[1:]))
	if err != nil {
		return nil, err
	}
	args := make([]string, n)
	for i := range args {
		header, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		size, err := strconv.Atoi(strings.TrimSpace(header[1:]))
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func (s *respServer) reply(args []string) string {
	if len(args) == 0 {
		return "-ERR empty command\r\n"
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch strings.ToUpper(args[0]) {
	case "PING":
		return "+PONG\r\n"
	case "CLIENT":
		return "+OK\r\n"
	case "SET":
		entry := respEntry{value: args[2]}
		for i := 3; i+1 < len(args); i += 2 {
			n, _ := strconv.Atoi(args[i+1])
			switch strings.ToUpper(args[i]) {
			case "PX":
				entry.deadline = time.Now().Add(time.Duration(n) * time.Millisecond)
			case "EX":
				entry.deadline = time.Now().Add(time.Duration(n) * time.Second)
			}
		}
		s.entries[args[1]] = entry
		return "+OK\r\n"
	case "GET":
		entry, ok := s.lookup(args[1])
		if !ok {
			return "$-1\r\n"
		}
		return fmt.Sprintf("$%d\r\n%s\r\n", len(entry.value), entry.value)
	case "PTTL":
		entry, ok := s.lookup(args[1])
		switch {
		case !ok:
			return ":-2\r\n"
		case entry.deadline.IsZero():
			return ":-1\r\n"
		default:
			return fmt.Sprintf(":%d\r\n", time.Until(entry.deadline).Milliseconds())
		}
	case "DEL":
		deleted := 0
		for _, key := range args[1:] {
			if _, ok := s.lookup(key); ok {
				delete(s.entries, key)
				deleted++
			}
		}
		return fmt.Sprintf(":%d\r\n", deleted)
	default:
		return fmt.Sprintf("-ERR unknown command '%s'\r\n", args[0])
	}
}

// lookup expects s.mu to be held.
func (s *respServer) lookup(key string) (respEntry, bool) {
	entry, ok := s.entries[key]
	if ok && !entry.deadline.IsZero() && time.Now().After(entry.deadline) {
		delete(s.entries, key)
		return respEntry{}, false
	}
	return entry, ok
}
