package mochizuki

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kennydo/mochizuki/config"
)

// MaxServerNameLength bounds the advertised server name, matching the
// hostname length limit of RFC 2812.
const MaxServerNameLength = 63

const (
	serverVersion = "0.0.1"
	userModes     = "o"
	channelModes  = "o"
)

// handlerFunc is a command handler. It receives the session and the raw,
// right-trimmed line; handlers re-parse the parameters they need.
type handlerFunc func(*Client, string)

// Channel represents an IRC channel and the state associated with it.
// Channels are tracked by the server registry, but no membership commands are
// wired to them yet.
type Channel struct {
	name    string
	clients map[string]*Client
}

// Server owns the registry of active sessions and wires each accepted
// connection to a Client and its supervisors.
type Server struct {
	sync.RWMutex
	config   *config.Config
	name     string
	debug    bool
	created  time.Time
	clients  map[string]*Client // nickname -> client
	channels map[string]*Channel
	handlers map[string]handlerFunc
	listener net.Listener
	shutdown chan struct{}
	stats    *ServerStats

	registrationTimeout time.Duration
	keepalivePeriod     time.Duration
	keepaliveTimeout    time.Duration
}

// NewServer creates a server from the given configuration. A nil cfg uses
// the built-in defaults. The command table is resolved here, once.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := cfg.Server.Name
	if len(name) > MaxServerNameLength {
		name = name[:MaxServerNameLength]
	}

	s := &Server{
		config:   cfg,
		name:     name,
		debug:    cfg.Debug,
		created:  time.Now().UTC(),
		clients:  make(map[string]*Client),
		channels: make(map[string]*Channel),
		shutdown: make(chan struct{}),
		stats:    &ServerStats{StartTime: time.Now()},

		registrationTimeout: time.Duration(cfg.Timeouts.Registration) * time.Second,
		keepalivePeriod:     time.Duration(cfg.Timeouts.KeepalivePeriod) * time.Second,
		keepaliveTimeout:    time.Duration(cfg.Timeouts.KeepaliveTimeout) * time.Second,
	}

	s.handlers = map[string]handlerFunc{
		"nick": (*Client).handleNick,
		"user": (*Client).handleUser,
		"ping": (*Client).handlePing,
		"pong": (*Client).handlePong,
	}

	return s, nil
}

// Start binds the IRC listener and begins accepting connections.
func (s *Server) Start() error {
	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.ListenAddress())
	if err != nil {
		return fmt.Errorf("failed to start IRC listener: %w", err)
	}
	s.listener = ln
	log.Printf("IRC server %s started on %s", s.name, ln.Addr().String())

	go s.acceptConnections(ln)

	return nil
}

// Stop closes the listener and disconnects every registered session. It is
// safe to call more than once.
func (s *Server) Stop() error {
	select {
	case <-s.shutdown:
		return nil
	default:
		close(s.shutdown)
	}

	log.Printf("Stopping IRC server %s...", s.name)

	var err error
	if s.listener != nil {
		err = s.listener.Close()
		s.listener = nil
	}

	s.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, client)
	}
	s.Unlock()

	for _, client := range clients {
		client.sendRaw("ERROR :Server shutting down")
		client.disconnect()
	}

	log.Printf("IRC server %s stopped", s.name)
	return err
}

// acceptConnections accepts incoming client connections until the listener
// closes.
func (s *Server) acceptConnections(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				log.Printf("Error accepting connection: %v", err)
				continue
			}
		}

		client := s.newClient(conn)
		s.stats.connOpened()

		go client.registrationTimer()
		go client.handleConnection()
	}
}

// newClient constructs a session for an accepted connection, deriving the
// hostname from the peer address.
func (s *Server) newClient(conn net.Conn) *Client {
	hostname := conn.RemoteAddr().String()
	if host, _, err := net.SplitHostPort(hostname); err == nil {
		hostname = host
	}

	return &Client{
		id:       uuid.New().String(),
		conn:     conn,
		server:   s,
		hostname: hostname,
		active:   true,
		writer:   bufio.NewWriter(conn),
		quit:     make(chan struct{}),
	}
}

// dispatch extracts the command token from a framed line and invokes the
// matching handler, falling back to the unknown-command handler.
func (s *Server) dispatch(c *Client, line string) {
	if s.debug {
		log.Printf("[%s] <= %#v", c.hostname, line)
	}
	s.stats.addReceived()

	command := ParseCommand(line)
	handler, ok := s.handlers[strings.ToLower(command)]
	if !ok {
		c.handleUnknown(command)
		return
	}

	handler(c, line)
}

// addClient inserts a freshly-registered session into the nickname registry.
func (s *Server) addClient(c *Client) {
	s.Lock()
	defer s.Unlock()
	s.clients[c.Nickname()] = c
}

// rekeyClient moves a session to its new nickname after a rename.
func (s *Server) rekeyClient(oldNick, newNick string, c *Client) {
	s.Lock()
	defer s.Unlock()
	if s.clients[oldNick] == c {
		delete(s.clients, oldNick)
	}
	s.clients[newNick] = c
}

// removeClient drops a session from the registry, if it is still the one
// registered under that nickname.
func (s *Server) removeClient(nickname string, c *Client) {
	if nickname == "" {
		return
	}
	s.Lock()
	defer s.Unlock()
	if s.clients[nickname] == c {
		delete(s.clients, nickname)
	}
}
