package mochizuki

import (
	"net"
	"time"
)

// Name returns the advertised server name, after truncation.
func (s *Server) Name() string {
	return s.name
}

// Created returns the server creation time echoed in RPL_CREATED.
func (s *Server) Created() time.Time {
	return s.created
}

// Addr returns the address the IRC listener is bound to, or nil before
// Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ClientCount returns the number of registered sessions.
func (s *Server) ClientCount() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.clients)
}

// GetClient looks up a registered session by nickname.
func (s *Server) GetClient(nickname string) (*Client, bool) {
	s.RLock()
	defer s.RUnlock()
	c, ok := s.clients[nickname]
	return c, ok
}

// Stats returns a point-in-time copy of the server counters.
func (s *Server) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}
