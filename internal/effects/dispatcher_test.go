package effects

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mentor3d/professor/internal/domain"
	"github.com/mentor3d/professor/internal/queue"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []*queue.EffectJob
	err       error
}

func (f *fakePublisher) PublishEffect(ctx context.Context, job *queue.EffectJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, job)
	return nil
}

// signalStore wraps fakeStore and signals when an enrollment lands.
type signalStore struct {
	fakeStore
	mu       sync.Mutex
	enrolled chan struct{}
}

func (s *signalStore) CreateEnrollment(ctx context.Context, e *domain.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fakeStore.CreateEnrollment(ctx, e); err != nil {
		return err
	}
	select {
	case s.enrolled <- struct{}{}:
	default:
	}
	return nil
}

func (s *signalStore) HasAchievement(ctx context.Context, userID string, kind domain.AchievementKind) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fakeStore.HasAchievement(ctx, userID, kind)
}

func (s *signalStore) CreateAchievement(ctx context.Context, a *domain.Achievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fakeStore.CreateAchievement(ctx, a)
}

func TestDispatcher_PrefersQueue(t *testing.T) {
	pub := &fakePublisher{}
	store := &signalStore{enrolled: make(chan struct{}, 1)}
	d := NewDispatcher(pub, NewWorker(store))

	d.Dispatch(context.Background(), queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: uuid.New()})

	pub.mu.Lock()
	n := len(pub.published)
	pub.mu.Unlock()
	if n != 1 {
		t.Fatalf("published = %d; want 1", n)
	}

	// Queued effects are not also applied inline
	select {
	case <-store.enrolled:
		t.Error("effect applied inline despite successful publish")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatcher_FallsBackWhenPublishFails(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	store := &signalStore{enrolled: make(chan struct{}, 1)}
	d := NewDispatcher(pub, NewWorker(store))

	d.Dispatch(context.Background(), queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: uuid.New()})

	select {
	case <-store.enrolled:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for inline apply after publish failure")
	}
}

func TestDispatcher_NoPublisher(t *testing.T) {
	store := &signalStore{enrolled: make(chan struct{}, 1)}
	d := NewDispatcher(nil, NewWorker(store))

	d.Dispatch(context.Background(), queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: uuid.New()})

	select {
	case <-store.enrolled:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for inline apply without a broker")
	}
}

func TestDispatcher_SurvivesCanceledRequestContext(t *testing.T) {
	store := &signalStore{enrolled: make(chan struct{}, 1)}
	d := NewDispatcher(nil, NewWorker(store))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Dispatch(ctx, queue.EffectEnroll, "user-1", queue.EnrollPayload{CourseID: uuid.New()})

	select {
	case <-store.enrolled:
	case <-time.After(2 * time.Second):
		t.Fatal("effect should run even after the request context is canceled")
	}
}
