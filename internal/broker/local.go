package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/arggpt/events"
	"github.com/casualjim/arggpt/pkg/uuidx"
)

const (
	defaultSlowSubscriberTimeout = 100 * time.Millisecond
	subscriptionBuffer           = 50
)

type localBroker struct {
	topics                *haxmap.Map[string, *topic]
	slowSubscriberTimeout time.Duration
}

// Local returns an in-process broker. A subscriber that can't accept an event
// within the slow subscriber timeout is dropped.
func Local() *localBroker {
	return &localBroker{
		topics:                haxmap.New[string, *topic](),
		slowSubscriberTimeout: defaultSlowSubscriberTimeout,
	}
}

// WithSlowSubscriberTimeout configures the timeout for detecting slow subscribers
func (b *localBroker) WithSlowSubscriberTimeout(timeout time.Duration) *localBroker {
	b.slowSubscriberTimeout = timeout
	return b
}

// Close ends every subscription and waits until the events already accepted
// have reached their hooks, or until ctx is done.
func (b *localBroker) Close(ctx context.Context) error {
	var subs []*subscription
	b.topics.ForEach(func(_ string, t *topic) bool {
		t.subscriptions.ForEach(func(_ string, sub *subscription) bool {
			subs = append(subs, sub)
			return true
		})
		return true
	})

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	for _, sub := range subs {
		select {
		case <-sub.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (b *localBroker) Topic(_ context.Context, id string) Topic {
	t, _ := b.topics.GetOrCompute(id, func() *topic {
		return &topic{
			ID:                    id,
			subscriptions:         haxmap.New[string, *subscription](),
			slowSubscriberTimeout: b.slowSubscriberTimeout,
		}
	})
	return t
}

type topic struct {
	ID                    string
	subscriptions         *haxmap.Map[string, *subscription]
	slowSubscriberTimeout time.Duration
}

func (t *topic) Publish(ctx context.Context, event events.Event) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}

	t.subscriptions.ForEach(func(_ string, sub *subscription) bool {
		if sub == nil {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-sub.ctx.Done():
			sub.Unsubscribe()
			return true
		default:
		}

		if !sub.send(ctx, event, t.slowSubscriberTimeout) {
			sub.Unsubscribe()
		}
		return ctx.Err() == nil
	})
	return ctx.Err()
}

func (t *topic) Subscribe(ctx context.Context, hook events.Hook) (Subscription, error) {
	if hook == nil {
		return nil, fmt.Errorf("hook is required")
	}

	id := uuidx.NewString()
	sub := &subscription{
		id:      id,
		ctx:     ctx,
		channel: make(chan events.Event, subscriptionBuffer),
		done:    make(chan struct{}),
		onClose: func() { t.subscriptions.Del(id) },
		hook:    hook,
	}
	t.subscriptions.Set(id, sub)
	go sub.forwardToHook()
	return sub, nil
}

type subscription struct {
	id      string
	ctx     context.Context
	channel chan events.Event
	done    chan struct{}
	onClose func()
	hook    events.Hook

	mu     sync.RWMutex
	closed bool
}

func (s *subscription) ID() string {
	return s.id
}

// send delivers the event unless the subscription is closed, its context is done
// or the buffer stays full past timeout. It reports false when the subscriber
// should be dropped.
func (s *subscription) send(ctx context.Context, event events.Event, timeout time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case s.channel <- event:
		return true
	case <-ctx.Done():
		return true
	case <-s.ctx.Done():
		return false
	case <-timer.C:
		return false
	}
}

func (s *subscription) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.onClose != nil {
		s.onClose()
	}
	close(s.channel)
}

func (s *subscription) forwardToHook() {
	defer close(s.done)
	for {
		select {
		case event, ok := <-s.channel:
			if !ok {
				return
			}
			if s.ctx.Err() != nil {
				return
			}
			events.Dispatch(s.ctx, s.hook, event)
		case <-s.ctx.Done():
			return
		}
	}
}
