package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"filmorate/internal/domain/film"
	"filmorate/internal/domain/shared"
	"filmorate/internal/domain/user"
	"filmorate/internal/infrastructure/cache"
	interfaces "filmorate/internal/interfaces/infrastructure"
	"filmorate/pkg/logger"
	"filmorate/pkg/validator"
)

// defaultCacheTimeout bounds every popular-cache call so an unreachable
// cache cannot hold the film lock for a full dial timeout.
const defaultCacheTimeout = 500 * time.Millisecond

var (
	_ film.Service     = (*FilmService)(nil)
	_ user.LikeRemover = (*FilmService)(nil)
)

// FilmService owns film validation, likes and the popularity ranking.
// All read-modify-write sequences run under mu so a like is never half applied.
// popularStale is set when a mutation could not invalidate the cache; rankings
// bypass the cache until an invalidation succeeds.
type FilmService struct {
	filmRepo     film.Repository
	userRepo     user.Repository
	popularCache interfaces.PopularFilmsCache
	popularTTL   time.Duration
	cacheTimeout time.Duration
	popularStale atomic.Bool
	mu           sync.RWMutex
}

// NewFilmService creates a new film service. A nil popularCache disables caching.
func NewFilmService(
	filmRepo film.Repository,
	userRepo user.Repository,
	popularCache interfaces.PopularFilmsCache,
	popularTTL time.Duration,
) *FilmService {
	if popularCache == nil {
		popularCache = cache.NewNoopCache()
	}
	return &FilmService{
		filmRepo:     filmRepo,
		userRepo:     userRepo,
		popularCache: popularCache,
		popularTTL:   popularTTL,
		cacheTimeout: defaultCacheTimeout,
	}
}

// CreateFilm validates f and stores it under a fresh id. Likes in the input are ignored.
func (s *FilmService) CreateFilm(ctx context.Context, f *film.Film) (*film.Film, error) {
	if f == nil {
		return nil, shared.NewValidationError("", "film body is required")
	}
	logger.Info("Creating film with name: %s", f.Name)

	if err := validator.Validate(f); err != nil {
		logger.Warn("Film validation failed: %v", err)
		return nil, err
	}

	candidate := f.Clone()
	candidate.Likes = shared.NewIDSet()

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.filmRepo.Add(candidate)
	if err != nil {
		logger.Error("Failed to create film: %v", err)
		return nil, fmt.Errorf("failed to create film: %w", err)
	}

	s.invalidatePopular(ctx)

	logger.Info("Film created successfully with ID: %d", created.ID)
	return created, nil
}

// UpdateFilm validates f and replaces the stored film with the same id,
// keeping the stored likes.
func (s *FilmService) UpdateFilm(ctx context.Context, f *film.Film) (*film.Film, error) {
	if f == nil {
		return nil, shared.NewValidationError("", "film body is required")
	}
	logger.Info("Updating film with ID: %d", f.ID)

	if err := validator.Validate(f); err != nil {
		logger.Warn("Film validation failed: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.filmRepo.GetByID(f.ID)
	if err != nil {
		return nil, err
	}

	candidate := f.Clone()
	candidate.Likes = existing.Likes

	updated, err := s.filmRepo.Update(candidate)
	if err != nil {
		logger.Error("Failed to update film: %v", err)
		return nil, err
	}

	logger.Info("Film updated successfully with ID: %d", updated.ID)
	return updated, nil
}

// GetFilm retrieves a film by ID
func (s *FilmService) GetFilm(ctx context.Context, id int64) (*film.Film, error) {
	logger.Debug("Getting film with ID: %d", id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filmRepo.GetByID(id)
}

// ListFilms returns all films in insertion order
func (s *FilmService) ListFilms(ctx context.Context) ([]*film.Film, error) {
	logger.Debug("Listing films")

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filmRepo.List(), nil
}

// DeleteFilm deletes a film
func (s *FilmService) DeleteFilm(ctx context.Context, id int64) error {
	logger.Info("Deleting film with ID: %d", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.filmRepo.Delete(id); err != nil {
		return err
	}

	s.invalidatePopular(ctx)

	logger.Info("Film deleted successfully with ID: %d", id)
	return nil
}

// AddLike records that userID likes filmID. A second like by the same user is rejected.
func (s *FilmService) AddLike(ctx context.Context, filmID, userID int64) error {
	logger.Info("User %d likes film %d", userID, filmID)

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.filmRepo.GetByID(filmID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}

	if !f.Likes.Add(userID) {
		return shared.NewValidationError("userId", "user %d already liked film %d", userID, filmID)
	}

	if _, err := s.filmRepo.Update(f); err != nil {
		logger.Error("Failed to store like: %v", err)
		return fmt.Errorf("failed to add like: %w", err)
	}

	s.invalidatePopular(ctx)
	return nil
}

// RemoveLike withdraws a like previously given by userID.
func (s *FilmService) RemoveLike(ctx context.Context, filmID, userID int64) error {
	logger.Info("User %d removes like from film %d", userID, filmID)

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.filmRepo.GetByID(filmID)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}

	if !f.Likes.Remove(userID) {
		return shared.NewValidationError("userId", "like from user %d not found on film %d", userID, filmID)
	}

	if _, err := s.filmRepo.Update(f); err != nil {
		logger.Error("Failed to remove like: %v", err)
		return fmt.Errorf("failed to remove like: %w", err)
	}

	s.invalidatePopular(ctx)
	return nil
}

// RemoveLikesBy drops every like given by userID. It is called after the user is deleted.
func (s *FilmService) RemoveLikesBy(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, f := range s.filmRepo.List() {
		if !f.Likes.Remove(userID) {
			continue
		}
		if _, err := s.filmRepo.Update(f); err != nil {
			return fmt.Errorf("failed to remove likes of user %d: %w", userID, err)
		}
		changed++
	}

	if changed > 0 {
		s.invalidatePopular(ctx)
		logger.Info("Removed %d likes of deleted user %d", changed, userID)
	}
	return nil
}

// GetPopular returns up to count films ordered by like count, most liked first.
// Films with equal counts keep insertion order.
func (s *FilmService) GetPopular(ctx context.Context, count int) ([]*film.Film, error) {
	if count <= 0 {
		return nil, shared.NewValidationError("count", "count must be positive, got %d", count)
	}
	logger.Debug("Getting %d popular films", count)

	s.mu.RLock()
	defer s.mu.RUnlock()

	useCache := s.popularCacheUsable(ctx)
	if useCache {
		if films, ok := s.cachedPopular(ctx, count); ok {
			return films, nil
		}
	}

	films := s.filmRepo.List()
	sort.SliceStable(films, func(i, j int) bool {
		return films[i].LikeCount() > films[j].LikeCount()
	})
	if len(films) > count {
		films = films[:count]
	}

	if useCache {
		s.storePopular(ctx, count, films)
	}

	return films, nil
}

// cachedPopular resolves a cached ranking. Any stale id makes it a miss.
func (s *FilmService) cachedPopular(ctx context.Context, count int) ([]*film.Film, bool) {
	ctx, cancel := s.cacheContext(ctx)
	defer cancel()

	ids, err := s.popularCache.GetPopular(ctx, count)
	if err != nil {
		if !errors.Is(err, interfaces.ErrCacheMiss) {
			logger.Warn("Failed to read popular films from cache: %v", err)
		}
		return nil, false
	}

	films := make([]*film.Film, 0, len(ids))
	for _, id := range ids {
		f, err := s.filmRepo.GetByID(id)
		if err != nil {
			logger.Debug("Cached popular film %d is gone, recomputing", id)
			return nil, false
		}
		films = append(films, f)
	}
	return films, true
}

func (s *FilmService) storePopular(ctx context.Context, count int, films []*film.Film) {
	ctx, cancel := s.cacheContext(ctx)
	defer cancel()

	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	if err := s.popularCache.SetPopular(ctx, count, ids, s.popularTTL); err != nil {
		logger.Warn("Failed to cache popular films: %v", err)
	}
}

// popularCacheUsable reports whether cached rankings can be trusted. After a
// failed invalidation it retries the invalidation first.
func (s *FilmService) popularCacheUsable(ctx context.Context) bool {
	if !s.popularStale.Load() {
		return true
	}
	return s.invalidatePopular(ctx)
}

// invalidatePopular must run with mu held.
func (s *FilmService) invalidatePopular(ctx context.Context) bool {
	ctx, cancel := s.cacheContext(ctx)
	defer cancel()

	if err := s.popularCache.InvalidatePopular(ctx); err != nil {
		logger.Warn("Failed to invalidate popular films cache, bypassing it: %v", err)
		s.popularStale.Store(true)
		return false
	}
	s.popularStale.Store(false)
	return true
}

func (s *FilmService) cacheContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cacheTimeout)
}
