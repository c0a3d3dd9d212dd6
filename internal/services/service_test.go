package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/photoshare-app/backend/internal/models"
	"github.com/photoshare-app/backend/internal/search"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.FollowerEntry{},
		&models.FollowingEntry{},
		&models.Photo{},
		&models.Tag{},
		&models.Like{},
		&models.Comment{},
		&models.FeedEntry{},
	))
	return db
}

// fakeIndex is an in-memory, call-recording stand-in for the external search
// service. Setting failAll makes every mutating call error, to exercise the
// best-effort contract.
type fakeIndex struct {
	mu      sync.Mutex
	photos  map[uint]*search.PhotoDocument
	users   map[uint]*search.UserDocument
	calls   []string
	failAll bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		photos: make(map[uint]*search.PhotoDocument),
		users:  make(map[uint]*search.UserDocument),
	}
}

func (f *fakeIndex) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.failAll {
		return errors.New("search service unavailable")
	}
	return nil
}

func (f *fakeIndex) SavePhoto(_ context.Context, doc *search.PhotoDocument) error {
	if err := f.record("SavePhoto"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *doc
	f.photos[doc.PhotoID] = &copied
	return nil
}

func (f *fakeIndex) AddPhotoComment(_ context.Context, photoID uint, comment string) error {
	if err := f.record("AddPhotoComment"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.photos[photoID]; ok {
		doc.Comments = append(doc.Comments, comment)
	}
	return nil
}

func (f *fakeIndex) SetPhotoComments(_ context.Context, photoID uint, comments []string) error {
	if err := f.record("SetPhotoComments"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if doc, ok := f.photos[photoID]; ok {
		doc.Comments = comments
	}
	return nil
}

func (f *fakeIndex) DeletePhoto(_ context.Context, photoID uint) error {
	if err := f.record("DeletePhoto"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.photos, photoID)
	return nil
}

func (f *fakeIndex) SaveUser(_ context.Context, doc *search.UserDocument) error {
	if err := f.record("SaveUser"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *doc
	f.users[doc.UserID] = &copied
	return nil
}

func (f *fakeIndex) SearchPhotos(_ context.Context, _ string, _ int) ([]search.PhotoDocument, error) {
	return nil, nil
}

func (f *fakeIndex) SearchUsers(_ context.Context, _ string, _ int) ([]search.UserDocument, error) {
	return nil, nil
}

func (f *fakeIndex) photoDoc(photoID uint) *search.PhotoDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.photos[photoID]
}

func (f *fakeIndex) userDoc(userID uint) *search.UserDocument {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[userID]
}

func (f *fakeIndex) callsMade() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// newTestServices wires the service container against a fresh database and a
// fake search index.
func newTestServices(t *testing.T) (*Services, *gorm.DB, *fakeIndex) {
	t.Helper()
	db := newTestDB(t)
	index := newFakeIndex()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewServices(db, index, log), db, index
}

// mustCreateUser registers an account directly through the service layer.
func mustCreateUser(t *testing.T, svcs *Services, username string) *models.User {
	t.Helper()
	user, err := svcs.Users.Create(context.Background(), models.CreateUserRequest{
		Username:  username,
		Password:  "password123",
		FirstName: username,
		LastName:  "Test",
	})
	require.NoError(t, err)
	return user
}
