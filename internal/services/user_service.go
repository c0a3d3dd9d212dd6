package services

import (
	"context"
	"errors"

	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/repositories"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages accounts and profiles.
type UserService struct {
	db    *gorm.DB
	users repositories.UserRepository
	index search.Index
	log   *logrus.Logger
}

// Create registers a new account. A duplicate username is a conflict, surfaced
// with the ALREADY_EXISTS wire code. The user search document is upserted
// after the commit, best-effort.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Description:  req.Description,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.users.WithTx(tx).CreateUser(user)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.ErrUsernameExists
		}
		return nil, err
	}

	s.syncUser(ctx, user)
	return user, nil
}

// Authenticate checks a username/password pair. Both a missing user and a bad
// password come back as the same LOGIN_FAILED error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrLoginFailed
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errs.ErrLoginFailed
	}
	return user, nil
}

// Get returns the user or a NOT_FOUND error.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates the actor's display fields and re-upserts the user
// search document after the commit.
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Description = req.Description
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.users.WithTx(tx).UpdateUser(user)
	})
	if err != nil {
		return nil, err
	}

	s.syncUser(ctx, user)
	return user, nil
}

// UpdateAvatar stores the new avatar's blob reference.
func (s *UserService) UpdateAvatar(ctx context.Context, actorID uint, avatarURL string) (*models.User, error) {
	user, err := s.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}
	user.AvatarURL = avatarURL
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.users.WithTx(tx).UpdateUser(user)
	})
	if err != nil {
		return nil, err
	}

	s.syncUser(ctx, user)
	return user, nil
}

func (s *UserService) syncUser(ctx context.Context, user *models.User) {
	doc := &search.UserDocument{
		UserID:      user.ID,
		Username:    user.Username,
		Name:        user.Name(),
		Description: user.Description,
		AvatarURL:   user.AvatarURL,
	}
	if err := s.index.SaveUser(ctx, doc); err != nil {
		logSyncFailure(s.log, err, "save user", logrus.Fields{"user_id": user.ID})
	}
}
