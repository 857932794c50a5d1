package repository

import (
	"errors"
	"sort"
	"sync"

	"filmorate/internal/domain/shared"
	"filmorate/internal/domain/user"
)

// memoryUserRepository keeps users in process memory. Ids start at 1 and are
// never reused, even after a delete.
type memoryUserRepository struct {
	users  map[int64]*user.User
	nextID int64
	mutex  sync.RWMutex
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() user.Repository {
	return &memoryUserRepository{
		users:  make(map[int64]*user.User),
		nextID: 1,
	}
}

// Add assigns the next id and stores a copy of u
func (r *memoryUserRepository) Add(u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := u.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.users[stored.ID] = stored

	return stored.Clone(), nil
}

// Update replaces the stored user with the same id
func (r *memoryUserRepository) Update(u *user.User) (*user.User, error) {
	if u == nil {
		return nil, errors.New("user is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[u.ID]; !exists {
		return nil, shared.NewNotFoundError("user", u.ID)
	}

	stored := u.Clone()
	r.users[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID retrieves a user by ID
func (r *memoryUserRepository) GetByID(id int64) (*user.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	u, exists := r.users[id]
	if !exists {
		return nil, shared.NewNotFoundError("user", id)
	}

	return u.Clone(), nil
}

// List returns every user in ascending id order, which is insertion order
func (r *memoryUserRepository) List() []*user.User {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	users := make([]*user.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users
}

// Delete deletes a user
func (r *memoryUserRepository) Delete(id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.users[id]; !exists {
		return shared.NewNotFoundError("user", id)
	}

	delete(r.users, id)
	return nil
}
