package mochizuki

import "time"

// ID returns the session's unique identifier.
func (c *Client) ID() string {
	return c.id
}

// Nickname returns the current nickname, or the empty string before the
// first NICK.
func (c *Client) Nickname() string {
	c.RLock()
	defer c.RUnlock()
	return c.nickname
}

// Username returns the username supplied by the USER command.
func (c *Client) Username() string {
	c.RLock()
	defer c.RUnlock()
	return c.username
}

// Hostname returns the hostname derived from the peer address at connect
// time.
func (c *Client) Hostname() string {
	return c.hostname
}

// Realname returns the real name supplied by the USER command.
func (c *Client) Realname() string {
	c.RLock()
	defer c.RUnlock()
	return c.realname
}

// Registered reports whether the session has completed the NICK/USER
// handshake. Once true it never reverts.
func (c *Client) Registered() bool {
	c.RLock()
	defer c.RUnlock()
	return c.registered
}

// Active reports whether the connection is still open.
func (c *Client) Active() bool {
	c.RLock()
	defer c.RUnlock()
	return c.active
}

// PendingPing reports whether a keepalive PING is awaiting its PONG.
func (c *Client) PendingPing() bool {
	c.RLock()
	defer c.RUnlock()
	return c.pendingPing
}

// LatestPing returns the send time of the most recent keepalive PING.
func (c *Client) LatestPing() time.Time {
	c.RLock()
	defer c.RUnlock()
	return c.latestPing
}

// Prefix returns the nick!user@host string identifying this session. It is
// derived from the current field values on every call, never cached.
func (c *Client) Prefix() string {
	c.RLock()
	defer c.RUnlock()
	return c.prefixLocked()
}
