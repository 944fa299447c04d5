package handler_test

import (
	"context"
	"sync"

	"ecommerce-transactions/internal/core/domain"
	"ecommerce-transactions/internal/core/ports"
)

// --- In-Memory Event Store ---

type inMemoryEventStore struct {
	mu     sync.Mutex
	events map[domain.TransactionID][]domain.Event
	keys   map[string]bool

	// held LoadEvents calls wait on barrier until all of them have read.
	barrier *sync.WaitGroup
	held    int
}

func newInMemoryEventStore() *inMemoryEventStore {
	return &inMemoryEventStore{
		events: make(map[domain.TransactionID][]domain.Event),
		keys:   make(map[string]bool),
	}
}

func (s *inMemoryEventStore) Append(_ context.Context, event domain.Event, expectedVersion int, idempotencyKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idempotencyKey != "" && s.keys[idempotencyKey] {
		return ports.ErrDuplicateEvent
	}
	id := event.Meta().TransactionID
	if len(s.events[id]) != expectedVersion {
		return ports.ErrConcurrentModification
	}
	s.events[id] = append(s.events[id], event)
	if idempotencyKey != "" {
		s.keys[idempotencyKey] = true
	}
	return nil
}

func (s *inMemoryEventStore) LoadEvents(_ context.Context, id domain.TransactionID) ([]domain.Event, error) {
	s.mu.Lock()
	events := append([]domain.Event(nil), s.events[id]...)
	barrier := s.barrier
	if barrier != nil {
		s.held--
		if s.held == 0 {
			s.barrier = nil
		}
	}
	s.mu.Unlock()

	if barrier != nil {
		barrier.Done()
		barrier.Wait()
	}
	return events, nil
}

// holdLoads makes the next n LoadEvents calls return only once all n have
// read the log, so concurrent commands see the same version.
func (s *inMemoryEventStore) holdLoads(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barrier = &sync.WaitGroup{}
	s.barrier.Add(n)
	s.held = n
}

func (s *inMemoryEventStore) count(id domain.TransactionID, code domain.EventCode) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events[id] {
		if e.Code() == code {
			n++
		}
	}
	return n
}

// --- In-Memory View Repo ---

type inMemoryViewRepo struct {
	mu    sync.RWMutex
	views map[string]domain.TransactionView
}

func newInMemoryViewRepo() *inMemoryViewRepo {
	return &inMemoryViewRepo{views: make(map[string]domain.TransactionView)}
}

func (r *inMemoryViewRepo) Save(_ context.Context, v *domain.TransactionView) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[v.TransactionID] = cloneView(*v)
	return nil
}

func (r *inMemoryViewRepo) FindByID(_ context.Context, id string) (*domain.TransactionView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[id]
	if !ok {
		return nil, nil
	}
	clone := cloneView(v)
	return &clone, nil
}

func (r *inMemoryViewRepo) FindByPaymentToken(_ context.Context, token string) (*domain.TransactionView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.views {
		for _, n := range v.PaymentNotices {
			if n.PaymentToken == token {
				clone := cloneView(v)
				return &clone, nil
			}
		}
	}
	return nil, nil
}

func cloneView(v domain.TransactionView) domain.TransactionView {
	v.PaymentNotices = append([]domain.PaymentNoticeView(nil), v.PaymentNotices...)
	if v.Fee != nil {
		fee := *v.Fee
		v.Fee = &fee
	}
	return v
}

// --- Recording Queue ---

type recordingQueue struct {
	mu           sync.Mutex
	closures     []ports.RetryMessage
	notification []ports.RetryMessage
}

func (q *recordingQueue) PublishClosureRetry(_ context.Context, msg ports.RetryMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closures = append(q.closures, msg)
	return nil
}

func (q *recordingQueue) PublishNotificationRetry(_ context.Context, msg ports.RetryMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notification = append(q.notification, msg)
	return nil
}

func (q *recordingQueue) closureMessages() []ports.RetryMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.RetryMessage(nil), q.closures...)
}

func (q *recordingQueue) notificationMessages() []ports.RetryMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]ports.RetryMessage(nil), q.notification...)
}
