package mochizuki

import (
	"fmt"
	"log"
	"time"
)

// waitOrQuit sleeps for d, or returns false early if the session disconnects
// first.
func (c *Client) waitOrQuit(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-c.quit:
		return false
	}
}

// registrationTimer disconnects the session if it has not completed the
// NICK/USER handshake before the deadline. It runs exactly once per
// connection; a session that registered in time renders the wake-up a no-op.
func (c *Client) registrationTimer() {
	if !c.waitOrQuit(c.server.registrationTimeout) {
		return
	}
	if c.Registered() || !c.Active() {
		return
	}

	log.Printf("[%s] Registration timed out after %s", c.hostname, c.server.registrationTimeout)
	registrationTimeouts.Inc()
	c.sendRaw("ERROR :Registration timed out")
	c.disconnect()
}

// keepaliveLoop pings the session once per keepalive period and disconnects
// it when no PONG arrives within the timeout window. It starts when
// registration completes and terminates as soon as the connection closes.
func (c *Client) keepaliveLoop() {
	period := c.server.keepalivePeriod
	timeout := c.server.keepaliveTimeout

	for c.Active() {
		// The flag goes up before the PING leaves, so a PONG can never
		// arrive ahead of it.
		sentAt := time.Now()
		c.Lock()
		c.latestPing = sentAt
		c.pendingPing = true
		c.Unlock()

		c.sendRaw(fmt.Sprintf("PING :%s", c.server.name))

		if !c.waitOrQuit(timeout) {
			return
		}

		if c.PendingPing() {
			if !c.Active() {
				return
			}
			log.Printf("[%s] Did not respond to PING within %s", c.hostname, timeout)
			pingTimeouts.Inc()
			c.sendRaw(fmt.Sprintf("ERROR :Ping timeout (%d seconds)", int(timeout/time.Second)))
			c.disconnect()
			return
		}

		if rest := period - time.Since(sentAt); rest > 0 {
			if !c.waitOrQuit(rest) {
				return
			}
		}
	}
}
