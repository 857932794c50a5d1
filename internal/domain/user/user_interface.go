package user

import "context"

// Repository stores users keyed by id. It assigns ids and reports missing ids
// as shared.NotFoundError; it does not validate business rules.
type Repository interface {
	Add(u *User) (*User, error)
	Update(u *User) (*User, error)
	GetByID(id int64) (*User, error)
	List() []*User
	Delete(id int64) error
}

// Service defines the user business operations exposed to the API layer.
type Service interface {
	CreateUser(ctx context.Context, u *User) (*User, error)
	UpdateUser(ctx context.Context, u *User) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	DeleteUser(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	GetFriends(ctx context.Context, userID int64) ([]*User, error)
	GetCommonFriends(ctx context.Context, userID, otherID int64) ([]*User, error)
}

// LikeRemover drops every like a user has given. User deletion calls it so no
// film keeps a like from a user that no longer exists.
type LikeRemover interface {
	RemoveLikesBy(ctx context.Context, userID int64) error
}
