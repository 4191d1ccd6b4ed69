package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventItineraryGenerated is sent when a tour gets a freshly generated day plan.
const EventItineraryGenerated = "itinerary.generated"

// Event is the JSON envelope pushed to tour subscribers.
type Event struct {
	Type   string `json:"type"`
	TourID string `json:"tour_id"`
	Data   any    `json:"data,omitempty"`
}

// Hub fans tour events out to websocket clients. With Redis every instance publishes to and
// listens on tour:{id}:itinerary, so clients connected to another instance see the event too.
type Hub struct {
	redis      *redis.Client
	pubsub     *redis.PubSub
	subscribed bool
	clients    map[string]map[*Client]struct{}
	mu         sync.RWMutex
}

type Client struct {
	TourID string
	Send   chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(tourID string) *Client {
	client := &Client{
		TourID: tourID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[tourID] == nil {
		h.clients[tourID] = map[*Client]struct{}{}
	}
	h.clients[tourID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if tourClients, ok := h.clients[client.TourID]; ok {
		delete(tourClients, client)
		if len(tourClients) == 0 {
			delete(h.clients, client.TourID)
		}
	}
	close(client.Send)
}

// Broadcast sends payload to everyone watching tourID. When the Redis subscription is live the
// local copy arrives through it; otherwise clients here are served directly.
func (h *Hub) Broadcast(tourID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(tourID), payload).Err()
		if err == nil && h.subscribed {
			return
		}
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
	h.deliver(tourID, payload)
}

// BroadcastEvent wraps data in an Event and broadcasts it.
func (h *Hub) BroadcastEvent(tourID, eventType string, data any) error {
	payload, err := json.Marshal(Event{Type: eventType, TourID: tourID, Data: data})
	if err != nil {
		return err
	}
	h.Broadcast(tourID, payload)
	return nil
}

func (h *Hub) Close() error {
	if h.pubsub != nil {
		return h.pubsub.Close()
	}
	return nil
}

func (h *Hub) deliver(tourID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[tourID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pubsub := h.redis.PSubscribe(context.Background(), channelPattern)
	if _, err := pubsub.Receive(ctx); err != nil {
		log.Printf("redis subscribe error: %v", err)
		_ = pubsub.Close()
		return
	}
	h.pubsub = pubsub
	h.subscribed = true

	ch := pubsub.Channel()
	go func() {
		for msg := range ch {
			h.deliver(tourIDFromChannel(msg.Channel), []byte(msg.Payload))
		}
	}()
}

const (
	channelPrefix  = "tour:"
	channelSuffix  = ":itinerary"
	channelPattern = channelPrefix + "*" + channelSuffix
)

func redisChannel(tourID string) string {
	return channelPrefix + tourID + channelSuffix
}

func tourIDFromChannel(ch string) string {
	// tour:{id}:itinerary
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}
