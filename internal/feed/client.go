package feed

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/npezzotti/go-forum/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is a single websocket subscriber to one room's feed.
type Client struct {
	conn   *websocket.Conn
	hub    *Hub
	log    *log.Logger
	user   types.User
	roomId int
	send   chan *types.Message
	stop   chan struct{}
}

func NewClient(user types.User, roomId int, conn *websocket.Conn, hub *Hub, l *log.Logger) *Client {
	return &Client{
		conn:   conn,
		hub:    hub,
		log:    l,
		user:   user,
		roomId: roomId,
		send:   make(chan *types.Message, 64),
		stop:   make(chan struct{}),
	}
}

func (c *Client) queueMessage(msg *types.Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) Write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.log.Printf("write to feed client %q: %v", c.user.Username, err)
				return
			}
		case <-c.stop:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Read discards inbound frames, the feed is one-way. It exists to
// process control messages and detect the peer going away.
func (c *Client) Read() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Printf("feed client %q read: %v", c.user.Username, err)
			}
			return
		}
	}
}
