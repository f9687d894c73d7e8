package ws

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"tastetrail/internal/restaurants"
)

// SearchService runs a restaurant search for a connected client.
type SearchService interface {
	Search(ctx context.Context, location *restaurants.Location, filters restaurants.FilterConfig) ([]restaurants.Restaurant, error)
}

type Manager struct {
	clients        map[string]*Client
	register       chan *Client
	unregister     chan *Client
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	logger         *slog.Logger
	service        SearchService
	debounceWindow time.Duration
}

func NewManager(ctx context.Context, logger *slog.Logger, service SearchService, debounceWindow time.Duration) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	return &Manager{
		clients:        make(map[string]*Client),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		ctx:            ctx,
		cancel:         cancel,
		logger:         logger,
		service:        service,
		debounceWindow: debounceWindow,
	}
}

func (m *Manager) Start() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.ID] = client
			m.mu.Unlock()
			m.logger.Info("client connected", "clientID", client.ID)
		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.send)
				m.logger.Info("client disconnected", "clientID", client.ID)
			}
			m.mu.Unlock()
		case <-m.ctx.Done():
			return
		}
	}
}

// HandleNewConnection wraps an accepted websocket connection in a client and
// starts its pumps.
func (m *Manager) HandleNewConnection(id string, conn *websocket.Conn) {
	client := NewClient(id, conn, m)
	client.Start()
}

func (m *Manager) forceDisconnect(c *Client) {
	c.Close()
}

func (m *Manager) Shutdown() {
	m.cancel()
	m.mu.Lock()
	for _, client := range m.clients {
		client.Close()
	}
	m.mu.Unlock()
}
