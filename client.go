package mochizuki

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

// Client represents one connected session: the identity fields supplied
// during registration, the connection handle, and the liveness flags the
// supervisors poll.
type Client struct {
	sync.RWMutex
	id     string
	conn   net.Conn
	server *Server
	framer LineFramer

	nickname string
	username string
	hostname string
	realname string

	registered  bool
	pendingPing bool
	active      bool
	latestPing  time.Time

	writer    *bufio.Writer
	writeLock sync.Mutex
	quit      chan struct{}
}

// handleConnection reads raw chunks from the connection, frames them into
// lines and dispatches each one. It returns when the peer goes away or the
// session is closed, and tears the session down on the way out.
func (c *Client) handleConnection() {
	defer c.disconnect()

	log.Printf("[%s] *** New client connected", c.hostname)

	buf := make([]byte, 4096)
	for {
		n, err := c.conn.Read(buf)
		if n > 0 {
			lines, dropped := c.framer.Feed(buf[:n])
			if dropped > 0 {
				log.Printf("[%s] Dropped %d undecodable line(s)", c.hostname, dropped)
			}
			for _, line := range lines {
				line = strings.TrimRight(line, " \t")
				if line == "" {
					continue
				}
				c.server.dispatch(c, line)
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("[%s] Error reading from client: %v", c.hostname, err)
			} else {
				log.Printf("[%s] Client disconnected", c.hostname)
			}
			return
		}
	}
}

// handleNick handles a NICK command. The first NICK of an unregistered
// session is silent; once registered, a NICK is a rename and the notification
// carries the pre-change prefix as its source.
func (c *Client) handleNick(line string) {
	params, err := ParseParams(line)
	if err != nil {
		c.sendNumeric(ERR_NONICKNAMEGIVEN, ":No nickname given")
		return
	}
	newNick := strings.SplitN(params, " ", 2)[0]
	if newNick == "" {
		c.sendNumeric(ERR_NONICKNAMEGIVEN, ":No nickname given")
		return
	}

	// TODO(kennydo) verify that no one else is using this nick

	c.Lock()
	if !c.registered {
		c.nickname = newNick
		c.Unlock()
		return
	}
	oldNick := c.nickname
	oldPrefix := c.prefixLocked()
	c.Unlock()

	log.Printf("[%s] %s is changing nick to %s", c.hostname, oldNick, newNick)
	c.sendRaw(fmt.Sprintf(":%s NICK :%s", oldPrefix, newNick))

	// Change the nick only after the notification so that the prefix shows
	// the old nick.
	c.Lock()
	c.nickname = newNick
	c.Unlock()
	c.server.rekeyClient(oldNick, newNick, c)
}

// handleUser handles a USER command, which completes registration when a
// nickname has already been set.
func (c *Client) handleUser(line string) {
	c.RLock()
	registered := c.registered
	nickname := c.nickname
	c.RUnlock()

	if registered {
		c.sendNumeric(ERR_ALREADYREGISTRED, ":Unauthorized command (already registered)")
		return
	}
	if nickname == "" {
		c.sendNumeric(ERR_NONICKNAMEGIVEN, ":No nickname given")
		return
	}

	params, err := ParseParams(line)
	if err != nil {
		c.sendNumeric(ERR_NEEDMOREPARAMS, "USER :Not enough parameters")
		return
	}

	username := strings.SplitN(params, " ", 2)[0]
	realname := username
	if i := strings.LastIndex(params, ":"); i >= 0 {
		realname = params[i+1:]
	}

	c.Lock()
	c.username = username
	c.realname = realname
	c.registered = true
	c.Unlock()

	c.server.addClient(c)

	serverName := c.server.name
	c.sendNumeric(RPL_WELCOME, fmt.Sprintf(
		":Welcome to the Internet Relay Network %s", c.Prefix()))
	c.sendNumeric(RPL_YOURHOST, fmt.Sprintf(":Your host is %s", serverName))
	c.sendNumeric(RPL_CREATED, fmt.Sprintf(
		":This server was created %s", c.server.created.Format("Jan 02 2006 at 15:04:05")))
	c.sendNumeric(RPL_MYINFO, fmt.Sprintf(
		":%s %s %s %s", serverName, serverVersion, userModes, channelModes))

	go c.keepaliveLoop()
}

// handlePing handles a PING command by echoing the token back in a PONG.
func (c *Client) handlePing(line string) {
	params, err := ParseParams(line)
	if err != nil {
		c.sendNumeric(ERR_NEEDMOREPARAMS, "PING :Not enough parameters")
		return
	}

	token := strings.TrimPrefix(params, ":")
	c.sendRaw(fmt.Sprintf("PONG %s :%s", c.server.name, token))
}

// handlePong handles a PONG command.
func (c *Client) handlePong(_ string) {
	c.Lock()
	c.pendingPing = false
	c.Unlock()
}

// handleUnknown replies to any command without a registered handler.
func (c *Client) handleUnknown(command string) {
	c.sendNumeric(ERR_UNKNOWNCOMMAND, fmt.Sprintf("%s :Unknown command", command))
}

// disconnect closes the session. It is safe to call from any goroutine and
// any number of times; the first call closes the connection, flips the
// active flag the supervisors poll, and removes the session from the
// registry.
func (c *Client) disconnect() {
	c.Lock()
	if !c.active {
		c.Unlock()
		return
	}
	c.active = false
	close(c.quit)
	nickname := c.nickname
	c.Unlock()

	c.conn.Close()
	c.server.removeClient(nickname, c)
	c.server.stats.connClosed()
	log.Printf("[%s] Connection closed", c.hostname)
}

// sendRaw writes one already-formed message to the peer, appending the line
// terminator. A failed write is logged and treated as an implicit connection
// loss.
func (c *Client) sendRaw(message string) {
	if c.server.debug {
		log.Printf("[%s] => %s", c.hostname, message)
	}

	c.writeLock.Lock()
	_, err := c.writer.WriteString(message + "\r\n")
	if err == nil {
		err = c.writer.Flush()
	}
	c.writeLock.Unlock()

	if err != nil {
		log.Printf("[%s] Error writing to client: %v", c.hostname, err)
		c.disconnect()
		return
	}

	c.server.stats.addSent()
}

// sendNumeric sends a numeric reply, addressed to the session's nickname when
// one is set.
func (c *Client) sendNumeric(numeric int, message string) {
	var sb strings.Builder

	sb.WriteString(":")
	sb.WriteString(c.server.name)
	sb.WriteString(" ")
	fmt.Fprintf(&sb, "%03d", numeric)
	sb.WriteString(" ")

	if nick := c.Nickname(); nick != "" {
		sb.WriteString(nick)
	} else {
		sb.WriteString("*")
	}
	sb.WriteString(" ")
	sb.WriteString(message)

	c.sendRaw(sb.String())
}

func (c *Client) prefixLocked() string {
	return FormatHostmask(c.nickname, c.username, c.hostname)
}
