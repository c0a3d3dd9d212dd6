package services

import (
	"context"
	"testing"

	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svcs, _, _ := newTestServices(t)
	ctx := context.Background()
	mustCreateUser(t, svcs, "alice")

	_, err := svcs.Users.Create(ctx, models.CreateUserRequest{
		Username:  "alice",
		Password:  "anotherpassword",
		FirstName: "Other",
		LastName:  "Alice",
	})
	assert.ErrorIs(t, err, errs.ErrUsernameExists)
}

func TestCreateUserUpsertsSearchDocument(t *testing.T) {
	svcs, _, index := newTestServices(t)

	alice := mustCreateUser(t, svcs, "alice")

	doc := index.userDoc(alice.ID)
	require.NotNil(t, doc)
	assert.Equal(t, "alice", doc.Username)
	assert.Equal(t, alice.Name(), doc.Name)
}

func TestAuthenticate(t *testing.T) {
	svcs, _, _ := newTestServices(t)
	ctx := context.Background()
	alice := mustCreateUser(t, svcs, "alice")

	got, err := svcs.Users.Authenticate(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = svcs.Users.Authenticate(ctx, "alice", "wrongpassword")
	assert.ErrorIs(t, err, errs.ErrLoginFailed)

	// An unknown user fails exactly like a bad password.
	_, err = svcs.Users.Authenticate(ctx, "nobody", "password123")
	assert.ErrorIs(t, err, errs.ErrLoginFailed)
}

func TestUpdateProfileSyncsSearchDocument(t *testing.T) {
	svcs, _, index := newTestServices(t)
	ctx := context.Background()
	alice := mustCreateUser(t, svcs, "alice")

	updated, err := svcs.Users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{
		FirstName:   "Alicia",
		LastName:    "Example",
		Description: "mountain photos mostly",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)

	doc := index.userDoc(alice.ID)
	require.NotNil(t, doc)
	assert.Equal(t, "Alicia Example", doc.Name)
	assert.Equal(t, "mountain photos mostly", doc.Description)
}

func TestUpdateProfileSurvivesSearchOutage(t *testing.T) {
	svcs, _, index := newTestServices(t)
	ctx := context.Background()
	alice := mustCreateUser(t, svcs, "alice")

	index.failAll = true
	_, err := svcs.Users.UpdateProfile(ctx, alice.ID, models.UpdateProfileRequest{
		FirstName: "Alicia",
		LastName:  "Example",
	})
	require.NoError(t, err, "mirror failure must not surface to the caller")

	got, err := svcs.Users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.FirstName)
}

func TestUpdateAvatar(t *testing.T) {
	svcs, _, index := newTestServices(t)
	ctx := context.Background()
	alice := mustCreateUser(t, svcs, "alice")

	_, err := svcs.Users.UpdateAvatar(ctx, alice.ID, "https://img.example/avatar.jpg")
	require.NoError(t, err)

	got, err := svcs.Users.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/avatar.jpg", got.AvatarURL)

	doc := index.userDoc(alice.ID)
	require.NotNil(t, doc)
	assert.Equal(t, "https://img.example/avatar.jpg", doc.AvatarURL)
}

func TestGetMissingUser(t *testing.T) {
	svcs, _, _ := newTestServices(t)

	_, err := svcs.Users.Get(context.Background(), 4242)
	require.Error(t, err)
	assert.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
}
