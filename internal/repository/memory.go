package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/skyflow/internal/domain"
)

// MemoryStore keeps users and reservations in process memory. It enforces the
// same constraints as the postgres schema: unique emails and reservations
// referencing existing users.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[int64]domain.User
	reservations map[int64]domain.Reservation
	nextUserID   int64
	nextResID    int64
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[int64]domain.User),
		reservations: make(map[int64]domain.Reservation),
		now:          time.Now,
	}
}

func (s *MemoryStore) Users() UserRepository {
	return (*memoryUsers)(s)
}

func (s *MemoryStore) Reservations() ReservationRepository {
	return (*memoryReservations)(s)
}

type memoryUsers MemoryStore

func (r *memoryUsers) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, ok := r.byEmail(email); ok {
		return &u, nil
	}
	return nil, ErrNotFound
}

func (r *memoryUsers) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail(email)
	return ok, nil
}

func (r *memoryUsers) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail(user.Email); ok {
		return ErrDuplicate
	}
	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = r.now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUsers) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	if other, ok := r.byEmail(user.Email); ok && other.ID != user.ID {
		return ErrDuplicate
	}
	user.UpdatedAt = r.now()
	r.users[user.ID] = *user
	return nil
}

// byEmail must be called with mu held.
func (r *memoryUsers) byEmail(email string) (domain.User, bool) {
	for _, u := range r.users {
		if u.Email == email {
			return u, true
		}
	}
	return domain.User{}, false
}

type memoryReservations MemoryStore

func (r *memoryReservations) Create(_ context.Context, res *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[res.UserID]; !ok {
		return ErrReferenceMissing
	}
	r.nextResID++
	res.ID = r.nextResID
	res.CreatedAt = r.now()
	r.reservations[res.ID] = *res
	return nil
}

func (r *memoryReservations) FindByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.reservations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (r *memoryReservations) ListByUser(_ context.Context, userID int64) ([]domain.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]domain.Reservation, 0)
	for _, res := range r.reservations {
		if res.UserID == userID {
			list = append(list, res)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *memoryReservations) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[id]; !ok {
		return ErrNotFound
	}
	delete(r.reservations, id)
	return nil
}

var (
	_ UserRepository        = (*memoryUsers)(nil)
	_ ReservationRepository = (*memoryReservations)(nil)
)
