package feed

import (
	"log"

	"github.com/npezzotti/go-forum/internal/stats"
	"github.com/npezzotti/go-forum/internal/types"
)

// Hub fans out newly posted messages to websocket clients watching a
// room. A single goroutine owns the room/client maps, all access goes
// through the channels.
type Hub struct {
	log        *log.Logger
	stats      stats.StatsProvider
	register   chan *Client
	unregister chan *Client
	publish    chan *types.Message
	rooms      map[int]map[*Client]struct{}
	stop       chan struct{}
	done       chan struct{}
}

func NewHub(logger *log.Logger, sp stats.StatsProvider) *Hub {
	return &Hub{
		log:        logger,
		stats:      sp,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan *types.Message, 256),
		rooms:      make(map[int]map[*Client]struct{}),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.publish:
			for client := range h.rooms[msg.RoomId] {
				if !client.queueMessage(msg) {
					h.log.Printf("dropping slow feed client for %q", client.user.Username)
					h.removeClient(client)
				}
			}
		case <-h.stop:
			for _, clients := range h.rooms {
				for client := range clients {
					close(client.stop)
				}
			}

			close(h.done)
			return
		}
	}
}

func (h *Hub) addClient(c *Client) {
	clients, ok := h.rooms[c.roomId]
	if !ok {
		clients = make(map[*Client]struct{})
		h.rooms[c.roomId] = clients
	}

	clients[c] = struct{}{}
	h.stats.Incr(stats.ActiveFeedClients)
	h.log.Printf("feed client %q joined room %d", c.user.Username, c.roomId)
}

func (h *Hub) removeClient(c *Client) {
	clients, ok := h.rooms[c.roomId]
	if !ok {
		return
	}

	if _, ok := clients[c]; !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(h.rooms, c.roomId)
	}

	h.stats.Decr(stats.ActiveFeedClients)
	close(c.send)
}

// Register and Unregister select on done so client goroutines that
// outlive the hub do not block forever on a loop that has exited.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish queues a message for delivery to the room's feed clients.
// It never blocks the caller, the event is dropped if the hub is
// saturated.
func (h *Hub) Publish(msg types.Message) {
	select {
	case h.publish <- &msg:
	default:
		h.log.Printf("feed publish channel full, dropping message for room %d", msg.RoomId)
	}
}

func (h *Hub) Shutdown() {
	close(h.stop)
	<-h.done
}
