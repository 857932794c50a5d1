package film

import "context"

// Repository stores films keyed by id. It assigns ids and reports missing ids
// as shared.NotFoundError; it does not validate business rules.
type Repository interface {
	Add(f *Film) (*Film, error)
	Update(f *Film) (*Film, error)
	GetByID(id int64) (*Film, error)
	List() []*Film
	Delete(id int64) error
}

// Service defines the film business operations exposed to the API layer.
type Service interface {
	CreateFilm(ctx context.Context, f *Film) (*Film, error)
	UpdateFilm(ctx context.Context, f *Film) (*Film, error)
	GetFilm(ctx context.Context, id int64) (*Film, error)
	ListFilms(ctx context.Context) ([]*Film, error)
	DeleteFilm(ctx context.Context, id int64) error
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	GetPopular(ctx context.Context, count int) ([]*Film, error)
}
