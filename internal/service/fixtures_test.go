package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"filmorate/internal/domain/film"
	"filmorate/internal/domain/shared"
	"filmorate/internal/domain/user"
	"filmorate/internal/infrastructure/repository"
	interfaces "filmorate/internal/interfaces/infrastructure"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	films *FilmService
	users *UserService
	cache *fakePopularCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	filmRepo := repository.NewMemoryFilmRepository()
	userRepo := repository.NewMemoryUserRepository()
	popular := newFakePopularCache()

	films := NewFilmService(filmRepo, userRepo, popular, time.Minute)
	users := NewUserService(userRepo, films)

	return &fixture{films: films, users: users, cache: popular}
}

func dateRef(y int, m time.Month, d int) *shared.Date {
	v := shared.NewDate(y, m, d)
	return &v
}

func newFilm(name string) *film.Film {
	return &film.Film{
		Name:        name,
		Description: "a film about " + name,
		ReleaseDate: dateRef(2001, time.May, 17),
		Duration:    100,
	}
}

func newUser(login string) *user.User {
	return &user.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: dateRef(1990, time.June, 1),
	}
}

func (f *fixture) mustCreateFilm(t *testing.T, name string) *film.Film {
	t.Helper()
	created, err := f.films.CreateFilm(context.Background(), newFilm(name))
	require.NoError(t, err)
	return created
}

func (f *fixture) mustCreateUser(t *testing.T, login string) *user.User {
	t.Helper()
	created, err := f.users.CreateUser(context.Background(), newUser(login))
	require.NoError(t, err)
	return created
}

// mustCreateUsers creates n users named u1..un and returns their ids.
func (f *fixture) mustCreateUsers(t *testing.T, n int) []int64 {
	t.Helper()
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = f.mustCreateUser(t, fmt.Sprintf("u%d", i+1)).ID
	}
	return ids
}

type fakePopularCache struct {
	mu             sync.Mutex
	entries        map[int][]int64
	hits           int
	invalidations  int
	failInvalidate bool
}

func newFakePopularCache() *fakePopularCache {
	return &fakePopularCache{entries: make(map[int][]int64)}
}

func (c *fakePopularCache) GetPopular(_ context.Context, count int) ([]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids, ok := c.entries[count]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	c.hits++
	return append([]int64(nil), ids...), nil
}

func (c *fakePopularCache) SetPopular(_ context.Context, count int, ids []int64, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[count] = append([]int64(nil), ids...)
	return nil
}

func (c *fakePopularCache) InvalidatePopular(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failInvalidate {
		return errors.New("cache unreachable")
	}
	c.entries = make(map[int][]int64)
	c.invalidations++
	return nil
}

func (c *fakePopularCache) setFailInvalidate(fail bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failInvalidate = fail
}

func (c *fakePopularCache) hitCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

func (c *fakePopularCache) put(count int, ids ...int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[count] = ids
}

// hangingCache never answers; every call waits for its context to end.
type hangingCache struct{}

func (hangingCache) GetPopular(ctx context.Context, _ int) ([]int64, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangingCache) SetPopular(ctx context.Context, _ int, _ []int64, _ time.Duration) error {
	<-ctx.Done()
	return ctx.Err()
}

func (hangingCache) InvalidatePopular(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}
