/*
Package mochizuki implements the connection and session engine of an IRC
server: line framing over TCP, command parsing and dispatch, the NICK/USER
registration state machine, registration and keepalive timeout supervision,
and RFC 2812 numeric reply formatting.

# Features

  - Line framing that tolerates arbitrarily-chunked reads and undecodable
    input
  - Two-step registration handshake (NICK then USER) with the four-part
    welcome sequence
  - Nickname renames announced with the pre-change prefix
  - PING/PONG handling in both directions, with a keepalive supervisor that
    disconnects unresponsive clients
  - Registration timeout supervision for connections that never finish the
    handshake
  - A nickname-keyed session registry with idempotent disconnects

Channel state is tracked but no membership, messaging or relay commands are
implemented; unrecognized commands receive ERR_UNKNOWNCOMMAND.

# Usage

To start a server with the built-in defaults (127.0.0.1:6667):

	server, err := mochizuki.NewServer(nil)
	if err != nil {
	    log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Start(); err != nil {
	    log.Fatalf("Failed to start server: %v", err)
	}

For file- and environment-based configuration, see the config package. The
admind package exposes a read-only status and metrics surface over HTTP.
*/
package mochizuki
