package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// subscriberBuffer bounds how far a slow viewer may fall behind before older updates are dropped.
const subscriberBuffer = 16

// Broker fans committed updates out to in-process subscribers.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan Update
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: map[string]map[int]chan Update{}}
}

// Subscribe registers a listener for matchID.
func (b *Broker) Subscribe(ctx context.Context, matchID string) (<-chan Update, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Update, subscriberBuffer)
	if b.subs[matchID] == nil {
		b.subs[matchID] = map[int]chan Update{}
	}
	b.subs[matchID][id] = ch
	b.mu.Unlock()

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[matchID], id)
			if len(b.subs[matchID]) == 0 {
				delete(b.subs, matchID)
			}
			close(ch)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-stop:
		}
	}()
	return ch, cancel
}

// Publish delivers u to every subscriber of its match. A subscriber whose buffer is full loses
// its oldest pending update.
func (b *Broker) Publish(u Update) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs[u.State.ID] {
		select {
		case ch <- u:
			continue
		default:
		}
		select {
		case <-ch:
			log.Warn("Dropped update for slow subscriber", "match_id", u.State.ID, "subscriber", id)
		default:
		}
		select {
		case ch <- u:
		default:
		}
	}
}

// Subscribers returns the number of listeners on matchID.
func (b *Broker) Subscribers(matchID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[matchID])
}
