// Package livefeed fans notifications out to connected stream subscribers,
// keyed by recipient user ID.
package livefeed

import (
	"errors"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	DefaultBufferSize       = 50
	DefaultSubscriberBuffer = 16
)

type Event struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type Hub struct {
	mu               sync.RWMutex
	feeds            map[snowflake.ID]*feed
	bufferSize       int
	subscriberBuffer int
}

type feed struct {
	mu     sync.Mutex
	buffer []Event
	subs   map[uint64]chan Event
	nextID uint64
}

type Subscription struct {
	hub         *Hub
	recipientID snowflake.ID
	id          uint64
	ch          chan Event
	once        sync.Once
}

func NewHub() *Hub {
	return &Hub{
		feeds:            make(map[snowflake.ID]*feed),
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

// Publish delivers the event to every live subscriber of the recipient.
// Slow subscribers are skipped rather than blocked on.
func (h *Hub) Publish(recipientID snowflake.ID, event Event) {
	if h == nil || recipientID == 0 {
		return
	}
	h.mu.RLock()
	f := h.feeds[recipientID]
	h.mu.RUnlock()
	if f == nil {
		return
	}

	f.mu.Lock()
	f.buffer = append(f.buffer, event)
	if len(f.buffer) > h.bufferSize {
		f.buffer = f.buffer[len(f.buffer)-h.bufferSize:]
	}
	subs := make([]chan Event, 0, len(f.subs))
	for _, ch := range f.subs {
		subs = append(subs, ch)
	}
	f.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a live subscriber and returns the buffered backlog of
// recent events for the recipient.
func (h *Hub) Subscribe(recipientID snowflake.ID) (*Subscription, []Event, error) {
	if h == nil {
		return nil, nil, errors.New("hub_unavailable")
	}
	if recipientID == 0 {
		return nil, nil, errors.New("invalid_recipient")
	}

	f := h.ensureFeed(recipientID)
	f.mu.Lock()
	if f.subs == nil {
		f.subs = make(map[uint64]chan Event)
	}
	id := f.nextID
	f.nextID++
	ch := make(chan Event, h.subscriberBuffer)
	f.subs[id] = ch
	backlog := append([]Event(nil), f.buffer...)
	f.mu.Unlock()

	return &Subscription{
		hub:         h,
		recipientID: recipientID,
		id:          id,
		ch:          ch,
	}, backlog, nil
}

func (h *Hub) ensureFeed(recipientID snowflake.ID) *feed {
	h.mu.RLock()
	current := h.feeds[recipientID]
	h.mu.RUnlock()
	if current != nil {
		return current
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current = h.feeds[recipientID]
	if current == nil {
		current = &feed{subs: make(map[uint64]chan Event)}
		h.feeds[recipientID] = current
	}
	return current
}

func (h *Hub) unsubscribe(recipientID snowflake.ID, id uint64) {
	if h == nil {
		return
	}

	h.mu.RLock()
	f := h.feeds[recipientID]
	h.mu.RUnlock()
	if f == nil {
		return
	}

	f.mu.Lock()
	delete(f.subs, id)
	remaining := len(f.subs)
	f.mu.Unlock()
	if remaining != 0 {
		return
	}

	h.mu.Lock()
	current := h.feeds[recipientID]
	if current != f {
		h.mu.Unlock()
		return
	}
	f.mu.Lock()
	empty := len(f.subs) == 0
	f.mu.Unlock()
	if empty {
		delete(h.feeds, recipientID)
	}
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan Event {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.recipientID, s.id)
	})
}
