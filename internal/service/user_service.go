package service

import (
	"context"
	"fmt"
	"sync"

	"filmorate/internal/domain/shared"
	"filmorate/internal/domain/user"
	"filmorate/pkg/logger"
	"filmorate/pkg/validator"
)

var _ user.Service = (*UserService)(nil)

// UserService owns user validation and the friendship relation.
// Friendship is stored on both users and both sides change under one lock.
type UserService struct {
	userRepo    user.Repository
	likeRemover user.LikeRemover
	mu          sync.RWMutex
}

// NewUserService creates a new user service. likeRemover may be nil when no
// film catalogue needs cleaning up after user deletion.
func NewUserService(userRepo user.Repository, likeRemover user.LikeRemover) *UserService {
	return &UserService{
		userRepo:    userRepo,
		likeRemover: likeRemover,
	}
}

// CreateUser validates u, defaults an empty name to the login and stores it.
func (s *UserService) CreateUser(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, shared.NewValidationError("", "user body is required")
	}
	logger.Info("Creating user with login: %s", u.Login)

	if err := validator.Validate(u); err != nil {
		logger.Warn("User validation failed: %v", err)
		return nil, err
	}

	candidate := u.Clone()
	candidate.ApplyDefaults()
	candidate.Friends = shared.NewIDSet()

	s.mu.Lock()
	defer s.mu.Unlock()

	created, err := s.userRepo.Add(candidate)
	if err != nil {
		logger.Error("Failed to create user: %v", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User created successfully with ID: %d", created.ID)
	return created, nil
}

// UpdateUser validates u and replaces the stored user, keeping its friends.
func (s *UserService) UpdateUser(ctx context.Context, u *user.User) (*user.User, error) {
	if u == nil {
		return nil, shared.NewValidationError("", "user body is required")
	}
	logger.Info("Updating user with ID: %d", u.ID)

	if err := validator.Validate(u); err != nil {
		logger.Warn("User validation failed: %v", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.userRepo.GetByID(u.ID)
	if err != nil {
		return nil, err
	}

	candidate := u.Clone()
	candidate.ApplyDefaults()
	candidate.Friends = existing.Friends

	updated, err := s.userRepo.Update(candidate)
	if err != nil {
		logger.Error("Failed to update user: %v", err)
		return nil, err
	}

	logger.Info("User updated successfully with ID: %d", updated.ID)
	return updated, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	logger.Debug("Getting user with ID: %d", id)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userRepo.GetByID(id)
}

// ListUsers returns all users in insertion order
func (s *UserService) ListUsers(ctx context.Context) ([]*user.User, error) {
	logger.Debug("Listing users")

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.userRepo.List(), nil
}

// DeleteUser removes the user, unfriends it everywhere and drops its likes.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	logger.Info("Deleting user with ID: %d", id)

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}

	for _, friendID := range existing.Friends.Sorted() {
		friend, err := s.userRepo.GetByID(friendID)
		if err != nil {
			logger.Warn("Friend %d of user %d is missing: %v", friendID, id, err)
			continue
		}
		friend.Friends.Remove(id)
		if _, err := s.userRepo.Update(friend); err != nil {
			return fmt.Errorf("failed to unfriend user %d: %w", friendID, err)
		}
	}

	if err := s.userRepo.Delete(id); err != nil {
		logger.Error("Failed to delete user: %v", err)
		return err
	}

	if s.likeRemover != nil {
		if err := s.likeRemover.RemoveLikesBy(ctx, id); err != nil {
			logger.Error("Failed to remove likes of deleted user %d: %v", id, err)
			return err
		}
	}

	logger.Info("User deleted successfully with ID: %d", id)
	return nil
}

// AddFriend makes userID and friendID friends of each other.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return shared.NewValidationError("friendId", "user %d cannot befriend themselves", userID)
	}
	logger.Info("Adding friendship between users %d and %d", userID, friendID)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	friend, err := s.userRepo.GetByID(friendID)
	if err != nil {
		return err
	}

	if u.Friends.Contains(friendID) {
		return shared.NewValidationError("friendId", "users %d and %d are already friends", userID, friendID)
	}

	original := u.Clone()
	u.Friends.Add(friendID)
	friend.Friends.Add(userID)

	return s.storePair(original, u, friend)
}

// RemoveFriend ends the friendship. Removing a friendship that does not exist is a no-op.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return shared.NewValidationError("friendId", "user %d cannot unfriend themselves", userID)
	}
	logger.Info("Removing friendship between users %d and %d", userID, friendID)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	friend, err := s.userRepo.GetByID(friendID)
	if err != nil {
		return err
	}

	original := u.Clone()
	removed := u.Friends.Remove(friendID)
	removed = friend.Friends.Remove(userID) || removed
	if !removed {
		logger.Debug("Users %d and %d are not friends, nothing to remove", userID, friendID)
		return nil
	}

	return s.storePair(original, u, friend)
}

// storePair writes both sides of a friendship change. If the second write
// fails the first is rolled back to original.
func (s *UserService) storePair(original, first, second *user.User) error {
	if _, err := s.userRepo.Update(first); err != nil {
		return fmt.Errorf("failed to update user %d: %w", first.ID, err)
	}
	if _, err := s.userRepo.Update(second); err != nil {
		if _, rbErr := s.userRepo.Update(original); rbErr != nil {
			logger.Error("Failed to roll back user %d: %v", original.ID, rbErr)
		}
		return fmt.Errorf("failed to update user %d: %w", second.ID, err)
	}
	return nil
}

// GetFriends resolves the friends of userID ordered by id.
func (s *UserService) GetFriends(ctx context.Context, userID int64) ([]*user.User, error) {
	logger.Debug("Getting friends of user %d", userID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	return s.resolve(u.Friends.Sorted())
}

// GetCommonFriends returns the users who are friends of both userID and otherID.
func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]*user.User, error) {
	if userID == otherID {
		return nil, shared.NewValidationError("otherId", "common friends need two different users, got %d twice", userID)
	}
	logger.Debug("Getting common friends of users %d and %d", userID, otherID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	other, err := s.userRepo.GetByID(otherID)
	if err != nil {
		return nil, err
	}

	return s.resolve(u.Friends.Intersect(other.Friends).Sorted())
}

func (s *UserService) resolve(ids []int64) ([]*user.User, error) {
	users := make([]*user.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.userRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
