package server

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"sync"

	"go.uber.org/atomic"
)

// connEntry is one row of the connection table.
type connEntry struct {
	id     uint64
	proto  string
	typ    string
	local  string
	remote string
}

// connTracker keeps the listeners and accepted connections of every server
// so they can be listed by /api/stats.
type connTracker struct {
	nextID atomic.Uint64
	m      *metrics

	mtx       sync.Mutex
	listeners []connEntry
	conns     map[net.Conn]connEntry
}

func newConnTracker(m *metrics) *connTracker {
	return &connTracker{
		m:     m,
		conns: make(map[net.Conn]connEntry),
	}
}

func (t *connTracker) addListener(ln net.Listener) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.listeners = append(t.listeners, connEntry{
		id:    t.nextID.Inc(),
		proto: "TCP",
		typ:   "LISTENING",
		local: ln.Addr().String(),
	})
}

func (t *connTracker) removeListener(ln net.Listener) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	addr := ln.Addr().String()
	for i, e := range t.listeners {
		if e.local == addr {
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// connState is installed as http.Server.ConnState.
func (t *connTracker) connState(c net.Conn, state http.ConnState) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	switch state {
	case http.StateNew:
		t.conns[c] = connEntry{
			id:     t.nextID.Inc(),
			proto:  "TCP",
			typ:    "ACCEPTED ",
			local:  c.LocalAddr().String(),
			remote: c.RemoteAddr().String(),
		}
		t.m.openConns.Inc()
	case http.StateHijacked, http.StateClosed:
		if _, ok := t.conns[c]; ok {
			delete(t.conns, c)
			t.m.openConns.Dec()
		}
	}
}

func (t *connTracker) snapshot() []connEntry {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	entries := make([]connEntry, 0, len(t.listeners)+len(t.conns))
	entries = append(entries, t.listeners...)
	for _, e := range t.conns {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })
	return entries
}

func (t *connTracker) writeTable(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "ID PROTO TYPE      LOCAL           REMOTE\n"); err != nil {
		return err
	}
	for _, e := range t.snapshot() {
		if _, err := fmt.Fprintf(w, "%-3d %4s %s %-15s %s\n", e.id, e.proto, e.typ, e.local, e.remote); err != nil {
			return err
		}
	}
	return nil
}
