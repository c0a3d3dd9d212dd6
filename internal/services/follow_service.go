package services

import (
	"context"
	"errors"

	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/repositories"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSelfFollow is returned when a user tries to follow themselves. The edge
// set never holds self-edges.
var ErrSelfFollow = errors.New("cannot follow yourself")

// FollowService manages the directed follow graph.
type FollowService struct {
	db      *gorm.DB
	users   repositories.UserRepository
	follows repositories.FollowRepository
	log     *logrus.Logger
}

// SetFollow toggles the actor->target edge. Following an already-followed user
// and unfollowing a non-followed one are both no-ops.
func (s *FollowService) SetFollow(ctx context.Context, actorID, targetID uint, follow bool) (*models.User, error) {
	if actorID == targetID {
		return nil, ErrSelfFollow
	}
	target, err := s.users.GetUserByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.CodeNotFound, "user not found")
		}
		return nil, err
	}

	if follow {
		err = s.follows.AddEdge(actorID, targetID)
	} else {
		err = s.follows.RemoveEdge(actorID, targetID)
	}
	if err != nil {
		return nil, err
	}
	return target, nil
}

// IsFollowing is a point membership check against the edge set.
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID uint) (bool, error) {
	return s.follows.IsFollowing(actorID, targetID)
}

// Counts returns the follower and following counts for a user, computed from
// current index membership.
func (s *FollowService) Counts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if followers, err = s.follows.FollowerCount(userID); err != nil {
		return 0, 0, err
	}
	if following, err = s.follows.FollowingCount(userID); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.GetFollowers(userID)
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.follows.GetFollowing(userID)
}
