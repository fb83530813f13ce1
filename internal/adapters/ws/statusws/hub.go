// Package statusws streams accepted statuses to websocket subscribers.
package statusws

import (
	"context"
	"encoding/json"

	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

type Hub struct {
	ctx    context.Context
	cancel context.CancelFunc

	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan domain.WsEvent

	log logger.Logger
}

func NewHub(parent context.Context, log logger.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)

	return &Hub{
		ctx:    ctx,
		cancel: cancel,

		clients: make(map[*Client]bool),

		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		events:     make(chan domain.WsEvent, 256),

		log: log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			h.log.Info("ws: hub shutting down...")
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Info("ws: subscriber registered", "remote_addr", c.remoteAddr, "total", len(h.clients))

		case c := <-h.unregister:
			h.drop(c)

		case ev := <-h.events:
			h.handleEvent(ev)
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()
}

// Broadcast never blocks the caller; events are dropped when the buffer is
// full or the hub has stopped.
func (h *Hub) Broadcast(ev domain.WsEvent) {
	select {
	case h.events <- ev:
	case <-h.ctx.Done():
	default:
		h.log.Warn("ws: broadcast buffer full, dropping event", "event", ev.Event)
	}
}

func (h *Hub) drop(c *Client) {
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.Info("ws: subscriber unregistered", "remote_addr", c.remoteAddr, "total", len(h.clients))
}

func (h *Hub) handleEvent(ev domain.WsEvent) {
	message, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("ws: failed to marshal event", "error", err)
		return
	}

	for c := range h.clients {
		select {
		case c.send <- message:
		default:
			h.log.Warn("ws: subscriber too slow, dropping", "remote_addr", c.remoteAddr)
			h.drop(c)
		}
	}
}
