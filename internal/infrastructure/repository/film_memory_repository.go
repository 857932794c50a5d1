package repository

import (
	"errors"
	"sort"
	"sync"

	"filmorate/internal/domain/film"
	"filmorate/internal/domain/shared"
)

// memoryFilmRepository keeps films in process memory. Ids start at 1 and are
// never reused, even after a delete.
type memoryFilmRepository struct {
	films  map[int64]*film.Film
	nextID int64
	mutex  sync.RWMutex
}

// NewMemoryFilmRepository creates an empty in-memory film repository
func NewMemoryFilmRepository() film.Repository {
	return &memoryFilmRepository{
		films:  make(map[int64]*film.Film),
		nextID: 1,
	}
}

// Add assigns the next id and stores a copy of f
func (r *memoryFilmRepository) Add(f *film.Film) (*film.Film, error) {
	if f == nil {
		return nil, errors.New("film is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	stored := f.Clone()
	stored.ID = r.nextID
	r.nextID++
	r.films[stored.ID] = stored

	return stored.Clone(), nil
}

// Update replaces the stored film with the same id
func (r *memoryFilmRepository) Update(f *film.Film) (*film.Film, error) {
	if f == nil {
		return nil, errors.New("film is nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.films[f.ID]; !exists {
		return nil, shared.NewNotFoundError("film", f.ID)
	}

	stored := f.Clone()
	r.films[stored.ID] = stored
	return stored.Clone(), nil
}

// GetByID retrieves a film by ID
func (r *memoryFilmRepository) GetByID(id int64) (*film.Film, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	f, exists := r.films[id]
	if !exists {
		return nil, shared.NewNotFoundError("film", id)
	}

	return f.Clone(), nil
}

// List returns every film in ascending id order, which is insertion order
func (r *memoryFilmRepository) List() []*film.Film {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	films := make([]*film.Film, 0, len(r.films))
	for _, f := range r.films {
		films = append(films, f.Clone())
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })

	return films
}

// Delete deletes a film
func (r *memoryFilmRepository) Delete(id int64) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.films[id]; !exists {
		return shared.NewNotFoundError("film", id)
	}

	delete(r.films, id)
	return nil
}
