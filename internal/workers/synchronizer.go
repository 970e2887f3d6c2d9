package workers

import (
	"context"
	"reflect"
	"sync"
	"time"

	"messenger-client/internal/common/logger"
)

// FetchFunc загружает полный снимок ресурса для ключа
type FetchFunc[K comparable, T any] func(ctx context.Context, key K) ([]T, error)

// Update — новый снимок, доставляемый подписчику.
// Generation позволяет получателю отбросить ответ уже закрытой подписки.
type Update[K comparable, T any] struct {
	Name       string
	Key        K
	Generation uint64
	Items      []T
}

// Subscription — дескриптор одного запуска опроса. Dispose отменяет контекст
// текущего запроса и останавливает таймер.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Dispose не блокирует: обработчик обновлений может выполняться в том же
// цикле событий, что и вызывающий.
func (s *Subscription) Dispose() {
	s.once.Do(s.cancel)
}

// Done закрывается, когда горутина опроса завершилась
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

type Option[K comparable, T any] func(*Synchronizer[K, T])

// WithEqual задает сравнение снимков. Одинаковый снимок повторно не доставляется.
func WithEqual[K comparable, T any](equal func(a, b []T) bool) Option[K, T] {
	return func(s *Synchronizer[K, T]) {
		s.equal = equal
	}
}

// Synchronizer периодически перечитывает ресурс и целиком заменяет локальный снимок.
// Ошибка опроса логируется, предыдущий снимок сохраняется до следующего успешного ответа.
type Synchronizer[K comparable, T any] struct {
	name     string
	interval time.Duration
	fetch    FetchFunc[K, T]
	onUpdate func(Update[K, T])
	equal    func(a, b []T) bool

	mu          sync.Mutex
	key         K
	running     bool
	gen         uint64
	sub         *Subscription
	trigger     chan struct{}
	snapshot    []T
	hasSnapshot bool
}

func NewSynchronizer[K comparable, T any](name string, interval time.Duration, fetch FetchFunc[K, T], onUpdate func(Update[K, T]), opts ...Option[K, T]) *Synchronizer[K, T] {
	s := &Synchronizer[K, T]{
		name:     name,
		interval: interval,
		fetch:    fetch,
		onUpdate: onUpdate,
		equal: func(a, b []T) bool {
			return reflect.DeepEqual(a, b)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start запускает опрос для key: сразу и далее каждые interval.
// Повторный Start с тем же ключом ничего не делает; новый ключ закрывает
// старую подписку, очищает снимок и перезапускает таймер.
func (s *Synchronizer[K, T]) Start(ctx context.Context, key K) *Subscription {
	s.mu.Lock()
	if s.running && s.key == key {
		sub := s.sub
		s.mu.Unlock()
		return sub
	}

	old := s.sub
	s.gen++
	gen := s.gen
	s.key = key
	s.running = true
	s.snapshot = nil
	s.hasSnapshot = false

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{cancel: cancel, done: make(chan struct{})}
	trigger := make(chan struct{}, 1)
	s.sub = sub
	s.trigger = trigger
	s.mu.Unlock()

	if old != nil {
		old.Dispose()
	}

	logger.Debug().Str("poller", s.name).Interface("key", key).Uint64("generation", gen).Msg("Polling started")
	go s.run(subCtx, key, gen, trigger, sub.done)
	return sub
}

// Stop закрывает текущую подписку. Ответы, пришедшие позже, отбрасываются.
func (s *Synchronizer[K, T]) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	sub := s.sub
	s.gen++
	s.running = false
	s.sub = nil
	s.trigger = nil
	s.snapshot = nil
	s.hasSnapshot = false
	s.mu.Unlock()

	sub.Dispose()
	logger.Debug().Str("poller", s.name).Msg("Polling stopped")
}

// Refresh запрашивает внеочередной опрос (после отправки, добавления и т.п.)
func (s *Synchronizer[K, T]) Refresh() {
	s.mu.Lock()
	trigger := s.trigger
	s.mu.Unlock()

	if trigger == nil {
		return
	}
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// IsCurrent сообщает, что обновление с этим поколением еще актуально
func (s *Synchronizer[K, T]) IsCurrent(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && s.gen == generation
}

// Key возвращает ключ активной подписки
func (s *Synchronizer[K, T]) Key() (K, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key, s.running
}

// Snapshot возвращает последний успешно полученный снимок, nil до первого ответа
func (s *Synchronizer[K, T]) Snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Synchronizer[K, T]) run(ctx context.Context, key K, gen uint64, trigger <-chan struct{}, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.poll(ctx, key, gen)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.poll(ctx, key, gen)
		case <-trigger:
			s.poll(ctx, key, gen)
		}
	}
}

func (s *Synchronizer[K, T]) poll(ctx context.Context, key K, gen uint64) {
	items, err := s.fetch(ctx, key)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logger.Warn().Err(err).Str("poller", s.name).Interface("key", key).Msg("Poll failed, keeping previous snapshot")
		return
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	if !s.running || s.gen != gen {
		s.mu.Unlock()
		logger.Debug().Str("poller", s.name).Uint64("generation", gen).Msg("Dropping stale poll result")
		return
	}
	changed := !s.hasSnapshot || !s.equal(s.snapshot, items)
	s.snapshot = items
	s.hasSnapshot = true
	s.mu.Unlock()

	if changed && s.onUpdate != nil {
		s.onUpdate(Update[K, T]{Name: s.name, Key: key, Generation: gen, Items: items})
	}
}
