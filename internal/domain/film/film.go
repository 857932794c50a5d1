package film

import (
	"filmorate/internal/domain/shared"
)

// DefaultPopularCount is the size of the popular list when the caller does not ask for one.
const DefaultPopularCount = 10

// Film is a movie that users can like. Field order is the validation order.
type Film struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name" validate:"notblank"`
	Description string       `json:"description" validate:"max=200"`
	ReleaseDate *shared.Date `json:"releaseDate,omitempty" validate:"omitempty,notbefore=1895-12-28"`
	Duration    int          `json:"duration" validate:"gt=0"`
	Likes       shared.IDSet `json:"likes"`
}

// LikeCount is the popularity of the film.
func (f *Film) LikeCount() int {
	return f.Likes.Len()
}

// Clone returns a deep copy so callers never share the like set with storage.
func (f *Film) Clone() *Film {
	c := *f
	if f.ReleaseDate != nil {
		d := *f.ReleaseDate
		c.ReleaseDate = &d
	}
	c.Likes = f.Likes.Clone()
	return &c
}
