package stream

import (
	"context"
	"sync"
)

// Broadcast fans values out to any number of subscribers and replays the
// latest published value to each new subscriber. Subscribers that fall behind
// only ever miss intermediate values, never the latest one.
type Broadcast[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
	latest T
	primed bool
}

// NewBroadcast returns an empty broadcast with no cached value.
func NewBroadcast[T any]() *Broadcast[T] {
	return &Broadcast[T]{subs: make(map[int]chan T)}
}

// Publish caches value and delivers it to every subscriber. Slow subscribers
// have their stale buffered value replaced rather than blocking the producer.
func (b *Broadcast[T]) Publish(value T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = value
	b.primed = true

	for _, ch := range b.subs {
		select {
		case ch <- value:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- value:
			default:
			}
		}
	}
}

// Subscribe registers a new observer. The returned channel receives the
// cached latest value (if any) and every subsequent publish. The cancel
// function detaches the observer; it is also invoked when ctx is done.
func (b *Broadcast[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan T, 1)
	if b.primed {
		ch <- b.latest
	}
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
			b.mu.Unlock()
		})
	}

	if ctx != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel
}

// Latest returns the cached value and whether one has been published yet.
func (b *Broadcast[T]) Latest() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.primed
}

// SubscriberCount reports the number of attached observers.
func (b *Broadcast[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
