package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int
	Text string
}

func collect[K comparable, T any]() (chan Update[K, T], func(Update[K, T])) {
	ch := make(chan Update[K, T], 64)
	return ch, func(u Update[K, T]) { ch <- u }
}

func receive[K comparable, T any](t *testing.T, ch chan Update[K, T]) Update[K, T] {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("no update received")
		return Update[K, T]{}
	}
}

func assertNoUpdate[K comparable, T any](t *testing.T, ch chan Update[K, T], wait time.Duration) {
	t.Helper()
	select {
	case u := <-ch:
		t.Fatalf("unexpected update: %+v", u)
	case <-time.After(wait):
	}
}

func TestSnapshotAlwaysEqualsLatestResponse(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context, key int) ([]item, error) {
		n := int(calls.Add(1))
		out := make([]item, 0, n)
		for i := 1; i <= n; i++ {
			out = append(out, item{ID: i})
		}
		return out, nil
	}
	ch, sink := collect[int, item]()

	s := NewSynchronizer("messages", 5*time.Millisecond, fetch, sink)
	s.Start(context.Background(), 1)
	defer s.Stop()

	for want := 1; want <= 4; want++ {
		u := receive(t, ch)
		assert.Len(t, u.Items, want, "each poll replaces the list instead of merging")
		assert.Equal(t, 1, u.Key)
	}
	assert.GreaterOrEqual(t, len(s.Snapshot()), 4)
}

func TestIdenticalSnapshotsAreDeliveredOnce(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context, key int) ([]item, error) {
		calls.Add(1)
		return []item{{ID: 1, Text: "hi"}, {ID: 2, Text: "hello"}}, nil
	}
	ch, sink := collect[int, item]()

	s := NewSynchronizer("messages", 2*time.Millisecond, fetch, sink)
	s.Start(context.Background(), 7)
	defer s.Stop()

	u := receive(t, ch)
	assert.Len(t, u.Items, 2)

	require.Eventually(t, func() bool { return calls.Load() >= 5 }, 2*time.Second, time.Millisecond)
	assertNoUpdate(t, ch, 20*time.Millisecond)
	assert.Len(t, s.Snapshot(), 2)
}

func TestFailedPollKeepsPreviousSnapshot(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context, key int) ([]item, error) {
		if calls.Add(1) == 1 {
			return []item{{ID: 1}}, nil
		}
		return nil, errors.New("gateway down")
	}
	ch, sink := collect[int, item]()

	s := NewSynchronizer("contacts", 2*time.Millisecond, fetch, sink)
	s.Start(context.Background(), 1)
	defer s.Stop()

	receive(t, ch)
	require.Eventually(t, func() bool { return calls.Load() >= 4 }, 2*time.Second, time.Millisecond)

	assert.Equal(t, []item{{ID: 1}}, s.Snapshot())
	assertNoUpdate(t, ch, 10*time.Millisecond)
}

func TestKeyChangeRestartsSubscription(t *testing.T) {
	fetch := func(ctx context.Context, key int) ([]item, error) {
		return []item{{ID: key}}, nil
	}
	ch, sink := collect[int, item]()

	s := NewSynchronizer("messages", time.Hour, fetch, sink)
	ctx := context.Background()

	first := s.Start(ctx, 1)
	u1 := receive(t, ch)
	assert.Equal(t, 1, u1.Key)
	assert.True(t, s.IsCurrent(u1.Generation))

	assert.Same(t, first, s.Start(ctx, 1), "same key keeps the running subscription")

	second := s.Start(ctx, 2)
	assert.NotSame(t, first, second)

	select {
	case <-first.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("old subscription was not disposed")
	}

	u2 := receive(t, ch)
	assert.Equal(t, 2, u2.Key)
	assert.Equal(t, []item{{ID: 2}}, u2.Items)
	assert.False(t, s.IsCurrent(u1.Generation))
	assert.True(t, s.IsCurrent(u2.Generation))

	key, running := s.Key()
	assert.True(t, running)
	assert.Equal(t, 2, key)

	s.Stop()
	assert.False(t, s.IsCurrent(u2.Generation))
	assert.Nil(t, s.Snapshot())
	_, running = s.Key()
	assert.False(t, running)
}

func TestStaleResponseIsDroppedAfterStop(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	fetch := func(ctx context.Context, key int) ([]item, error) {
		once.Do(func() { close(started) })
		<-release // ответ приходит после закрытия экрана
		return []item{{ID: 99}}, nil
	}
	ch, sink := collect[int, item]()

	s := NewSynchronizer("messages", time.Hour, fetch, sink)
	sub := s.Start(context.Background(), 1)

	<-started
	s.Stop()
	close(release)

	select {
	case <-sub.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("poll loop did not exit")
	}
	assertNoUpdate(t, ch, 20*time.Millisecond)
	assert.Nil(t, s.Snapshot())
}

func TestRefreshTriggersImmediatePoll(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context, key int) ([]item, error) {
		n := int(calls.Add(1))
		return []item{{ID: n}}, nil
	}
	ch, sink := collect[int, item]()

	s := NewSynchronizer("contacts", time.Hour, fetch, sink)
	s.Refresh() // без подписки ничего не делает

	s.Start(context.Background(), 1)
	defer s.Stop()

	assert.Equal(t, []item{{ID: 1}}, receive(t, ch).Items)
	s.Refresh()
	assert.Equal(t, []item{{ID: 2}}, receive(t, ch).Items)
}

func TestCustomEqual(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context, key int) ([]item, error) {
		n := int(calls.Add(1))
		return []item{{ID: 1, Text: string(rune('a' + n))}}, nil
	}
	ch, sink := collect[int, item]()

	byID := func(a, b []item) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].ID != b[i].ID {
				return false
			}
		}
		return true
	}

	s := NewSynchronizer("contacts", 2*time.Millisecond, fetch, sink, WithEqual[int, item](byID))
	s.Start(context.Background(), 1)
	defer s.Stop()

	receive(t, ch)
	require.Eventually(t, func() bool { return calls.Load() >= 4 }, 2*time.Second, time.Millisecond)
	assertNoUpdate(t, ch, 10*time.Millisecond)
}
