package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"tastetrail/internal/debounce"
	"tastetrail/internal/restaurants"
)

const (
	// sendChannelSize controls the max number
	// of messages that can be queued for a client.
	sendChannelSize = 16
	pingPeriod      = (60 * 9 * time.Second) / 10
)

type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SearchRequest is the payload of a "search" message.
type SearchRequest struct {
	Location *restaurants.Location    `json:"location"`
	Filters  restaurants.FilterConfig `json:"filters"`
}

// QueryUpdate is the payload of a "query" message: a free-text change that
// re-runs the current search once the text has settled.
type QueryUpdate struct {
	Search string `json:"search"`
}

type searchResults struct {
	Restaurants []restaurants.Restaurant `json:"restaurants"`
}

type searchFailure struct {
	Message string `json:"message"`
}

type Client struct {
	ID      string
	Conn    *websocket.Conn
	Manager *Manager
	send    chan Message
	ctx     context.Context
	cancel  context.CancelFunc

	debouncer *debounce.Debouncer

	mu       sync.Mutex
	location *restaurants.Location
	filters  restaurants.FilterConfig
	// generation increments on every triggered search; a result only
	// commits when its generation is still the latest, so a superseded
	// in-flight search never overwrites a newer one.
	generation uint64
}

func NewClient(id string, conn *websocket.Conn, manager *Manager) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Client{
		ID:      id,
		Conn:    conn,
		Manager: manager,
		send:    make(chan Message, sendChannelSize),
		ctx:     ctx,
		cancel:  cancel,
	}
	c.debouncer = debounce.New(manager.debounceWindow, c.commitQuery)
	return c
}

func (c *Client) Start() {
	go c.readPump()
	go c.writePump()
	c.Manager.register <- c
}

func (c *Client) Close() {
	c.debouncer.Stop()
	if err := c.Conn.Close(websocket.StatusNormalClosure, "bye :P"); err != nil {
		c.Manager.logger.Warn("failed to close connection", "error", err)
	}
	c.cancel()
}

func (c *Client) Send(msg Message) {
	select {
	case c.send <- msg:
	default:
		c.Manager.forceDisconnect(c)
	}
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Close()
	}()

	for {
		var msg Message
		if err := wsjson.Read(c.ctx, c.Conn, &msg); err != nil {
			c.Manager.logger.Warn("failed to read message", "clientID", c.ID, "error", err)
			break
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.Conn.Close(websocket.StatusNormalClosure, "bye :P")
				return
			}
			if err := wsjson.Write(c.ctx, c.Conn, msg); err != nil {
				c.Manager.logger.Warn("failed to write message", "clientID", c.ID, "error", err)
				return
			}
			c.Manager.logger.Debug("message sent", "clientID", c.ID, "type", msg.Type)
		case <-ticker.C:
			if err := c.Conn.Ping(c.ctx); err != nil {
				c.Manager.logger.Debug("failed to ping client", "clientID", c.ID, "error", err)
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "search":
		c.Manager.logger.Debug("received search message", "clientID", c.ID, "data", msg.Data)

		var req SearchRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.Manager.logger.Warn("failed to unmarshal search message", "clientID", c.ID, "error", err)
			return
		}

		c.mu.Lock()
		c.location = req.Location
		c.filters = req.Filters
		c.generation++
		gen := c.generation
		c.mu.Unlock()

		go c.runSearch(gen)
	case "query":
		c.Manager.logger.Debug("received query message", "clientID", c.ID, "data", msg.Data)

		var update QueryUpdate
		if err := json.Unmarshal(msg.Data, &update); err != nil {
			c.Manager.logger.Warn("failed to unmarshal query message", "clientID", c.ID, "error", err)
			return
		}

		c.debouncer.Submit(update.Search)
	default:
		c.Manager.logger.Debug("received unknown type message", "clientID", c.ID, "type", msg.Type)
	}
}

// commitQuery runs once the free-text value has been stable for the debounce
// window.
func (c *Client) commitQuery(search string) {
	c.mu.Lock()
	c.filters.Search = search
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.runSearch(gen)
}

func (c *Client) runSearch(gen uint64) {
	c.mu.Lock()
	location := c.location
	filters := c.filters
	c.mu.Unlock()

	results, err := c.Manager.service.Search(c.ctx, location, filters)

	c.mu.Lock()
	stale := gen != c.generation
	c.mu.Unlock()
	if stale {
		c.Manager.logger.Debug("dropping superseded search result", "clientID", c.ID)
		return
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		payload, _ := json.Marshal(searchFailure{Message: err.Error()})
		c.Send(Message{Type: "error", Data: payload})
		return
	}

	payload, _ := json.Marshal(searchResults{Restaurants: results})
	c.Send(Message{Type: "results", Data: payload})
}
