package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	ChangeKindCycle     = "cycle"
	ChangeKindPregnancy = "pregnancy"
	ChangeKindSettings  = "settings"
)

// ChangeEvent announces that data owned by OwnerID changed.
type ChangeEvent struct {
	ID      string    `json:"id"`
	OwnerID uint      `json:"owner"`
	Kind    string    `json:"kind"`
	Date    string    `json:"date,omitempty"`
	At      time.Time `json:"at"`
}

type ChangeNotifier interface {
	Publish(event ChangeEvent)
	Subscribe(listener func(ChangeEvent)) (unsubscribe func())
}

func NewChangeEvent(ownerID uint, kind string, date string) ChangeEvent {
	return ChangeEvent{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Kind:    kind,
		Date:    date,
		At:      time.Now().UTC(),
	}
}

// ChangeHub delivers events synchronously to every subscriber on the
// publishing goroutine.
type ChangeHub struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(ChangeEvent)
}

func NewChangeHub() *ChangeHub {
	return &ChangeHub{listeners: make(map[int]func(ChangeEvent))}
}

func (hub *ChangeHub) Publish(event ChangeEvent) {
	hub.mu.RLock()
	listeners := make([]func(ChangeEvent), 0, len(hub.listeners))
	for _, listener := range hub.listeners {
		listeners = append(listeners, listener)
	}
	hub.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

func (hub *ChangeHub) Subscribe(listener func(ChangeEvent)) func() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	id := hub.nextID
	hub.nextID++
	hub.listeners[id] = listener

	var once sync.Once
	return func() {
		once.Do(func() {
			hub.mu.Lock()
			delete(hub.listeners, id)
			hub.mu.Unlock()
		})
	}
}

type noopChangeNotifier struct{}

func (noopChangeNotifier) Publish(ChangeEvent) {}

func (noopChangeNotifier) Subscribe(func(ChangeEvent)) func() { return func() {} }
