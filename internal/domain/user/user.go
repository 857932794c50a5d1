package user

import (
	"strings"

	"filmorate/internal/domain/shared"
)

// User is a member who likes films and befriends other users.
// Field order is the validation order.
type User struct {
	ID       int64        `json:"id"`
	Email    string       `json:"email" validate:"contains=@"`
	Login    string       `json:"login" validate:"notblank,nospaces"`
	Name     string       `json:"name"`
	Birthday *shared.Date `json:"birthday" validate:"required,notfuture"`
	Friends  shared.IDSet `json:"friends"`
}

// ApplyDefaults falls back to the login when no display name is given.
func (u *User) ApplyDefaults() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

func (u *User) Clone() *User {
	c := *u
	if u.Birthday != nil {
		d := *u.Birthday
		c.Birthday = &d
	}
	c.Friends = u.Friends.Clone()
	return &c
}
