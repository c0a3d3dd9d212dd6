package services

import (
	"context"
	"testing"

	"github.com/photoshare-app/backend/internal/errs"
	"github.com/photoshare-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishTestPhoto(t *testing.T, svcs *Services, ownerID uint, tags ...string) *models.Photo {
	t.Helper()
	photo, err := svcs.Photos.Publish(context.Background(), ownerID, PublishParams{
		URL:         "https://img.example/p.jpg",
		Description: "a test photo",
		Location:    "Berlin, Germany",
		Tags:        tags,
	})
	require.NoError(t, err)
	return photo
}

func TestPublishFansOutToFollowersAtPublishTime(t *testing.T) {
	svcs, db, index := newTestServices(t)
	ctx := context.Background()

	bob := mustCreateUser(t, svcs, "bob")
	alice := mustCreateUser(t, svcs, "alice")
	_, err := svcs.Follows.SetFollow(ctx, alice.ID, bob.ID, true)
	require.NoError(t, err)

	photo := publishTestPhoto(t, svcs, bob.ID, "sunset", "beach")

	// Exactly one feed entry, addressed to the one follower at publish time.
	var entries []models.FeedEntry
	require.NoError(t, db.Where("photo_id = ?", photo.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, alice.ID, entries[0].UserID)

	// The search document carries the tags and an empty comment list.
	doc := index.photoDoc(photo.ID)
	require.NotNil(t, doc)
	assert.Equal(t, []string{"sunset", "beach"}, doc.Tags)
	assert.Equal(t, []string{}, doc.Comments)
	assert.Equal(t, "bob", doc.OwnerUsername)

	// Following after publish never backfills the feed.
	carol := mustCreateUser(t, svcs, "carol")
	_, err = svcs.Follows.SetFollow(ctx, carol.ID, bob.ID, true)
	require.NoError(t, err)

	require.NoError(t, db.Where("photo_id = ?", photo.ID).Find(&entries).Error)
	assert.Len(t, entries, 1, "feed entries are fixed at publish time")
}

func TestPublishWithoutFollowersCreatesNoEntries(t *testing.T) {
	svcs, db, _ := newTestServices(t)
	bob := mustCreateUser(t, svcs, "bob")

	photo := publishTestPhoto(t, svcs, bob.ID)

	var count int64
	require.NoError(t, db.Model(&models.FeedEntry{}).Where("photo_id = ?", photo.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPublishDeduplicatesTags(t *testing.T) {
	svcs, _, index := newTestServices(t)
	bob := mustCreateUser(t, svcs, "bob")

	photo := publishTestPhoto(t, svcs, bob.ID, "sunset", "sunset", "beach")

	doc := index.photoDoc(photo.ID)
	require.NotNil(t, doc)
	assert.Equal(t, []string{"sunset", "beach"}, doc.Tags)

	loaded, err := svcs.Photos.View(context.Background(), photo.ID, 0)
	require.NoError(t, err)
	assert.Len(t, loaded.Tags, 2)
}

func TestPublishSurvivesSearchOutage(t *testing.T) {
	svcs, db, index := newTestServices(t)
	ctx := context.Background()

	bob := mustCreateUser(t, svcs, "bob")
	alice := mustCreateUser(t, svcs, "alice")
	_, err := svcs.Follows.SetFollow(ctx, alice.ID, bob.ID, true)
	require.NoError(t, err)

	index.failAll = true
	photo := publishTestPhoto(t, svcs, bob.ID, "sunset")

	// Primary-store effects are committed even though the mirror write failed.
	var photoCount, entryCount int64
	require.NoError(t, db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&photoCount).Error)
	require.NoError(t, db.Model(&models.FeedEntry{}).Where("photo_id = ?", photo.ID).Count(&entryCount).Error)
	assert.Equal(t, int64(1), photoCount)
	assert.Equal(t, int64(1), entryCount)
	assert.Nil(t, index.photoDoc(photo.ID))
}

func TestLikeToggleIsIdempotent(t *testing.T) {
	svcs, _, _ := newTestServices(t)
	ctx := context.Background()
	bob := mustCreateUser(t, svcs, "bob")
	alice := mustCreateUser(t, svcs, "alice")
	photo := publishTestPhoto(t, svcs, bob.ID)

	for i := 0; i < 2; i++ {
		_, err := svcs.Photos.SetLike(ctx, alice.ID, photo.ID, true)
		require.NoError(t, err)
	}

	view, err := svcs.Photos.View(ctx, photo.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.LikeCount, "double like must collapse to one")
	assert.True(t, view.IsLiked)

	for i := 0; i < 2; i++ {
		_, err := svcs.Photos.SetLike(ctx, alice.ID, photo.ID, false)
		require.NoError(t, err)
	}

	view, err = svcs.Photos.View(ctx, photo.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, view.LikeCount)
	assert.False(t, view.IsLiked)
}

func TestDeletePhotoCascades(t *testing.T) {
	svcs, db, index := newTestServices(t)
	ctx := context.Background()

	bob := mustCreateUser(t, svcs, "bob")
	alice := mustCreateUser(t, svcs, "alice")
	_, err := svcs.Follows.SetFollow(ctx, alice.ID, bob.ID, true)
	require.NoError(t, err)

	photo := publishTestPhoto(t, svcs, bob.ID, "sunset")
	_, err = svcs.Comments.Create(ctx, alice.ID, photo.ID, "nice!")
	require.NoError(t, err)
	_, err = svcs.Photos.SetLike(ctx, alice.ID, photo.ID, true)
	require.NoError(t, err)

	_, err = svcs.Photos.Delete(ctx, bob.ID, photo.ID)
	require.NoError(t, err)

	var comments, likes, entries, photos int64
	require.NoError(t, db.Model(&models.Comment{}).Where("photo_id = ?", photo.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Like{}).Where("photo_id = ?", photo.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&models.FeedEntry{}).Where("photo_id = ?", photo.ID).Count(&entries).Error)
	require.NoError(t, db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&photos).Error)
	assert.Zero(t, comments)
	assert.Zero(t, likes)
	assert.Zero(t, entries)
	assert.Zero(t, photos)

	assert.Nil(t, index.photoDoc(photo.ID), "search document must be removed")
}

func TestDeletePhotoRequiresOwnership(t *testing.T) {
	svcs, db, _ := newTestServices(t)
	ctx := context.Background()
	bob := mustCreateUser(t, svcs, "bob")
	alice := mustCreateUser(t, svcs, "alice")
	photo := publishTestPhoto(t, svcs, bob.ID)

	_, err := svcs.Photos.Delete(ctx, alice.ID, photo.ID)
	assert.ErrorIs(t, err, errs.ErrAlreadyDeleted)

	var count int64
	require.NoError(t, db.Model(&models.Photo{}).Where("id = ?", photo.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "photo must survive a non-owner delete")
}

func TestDeleteMissingPhoto(t *testing.T) {
	svcs, _, _ := newTestServices(t)
	bob := mustCreateUser(t, svcs, "bob")

	_, err := svcs.Photos.Delete(context.Background(), bob.ID, 4242)
	assert.ErrorIs(t, err, errs.ErrAlreadyDeleted)
}

func TestFeedReadReturnsFannedOutPhotos(t *testing.T) {
	svcs, _, _ := newTestServices(t)
	ctx := context.Background()

	bob := mustCreateUser(t, svcs, "bob")
	alice := mustCreateUser(t, svcs, "alice")
	_, err := svcs.Follows.SetFollow(ctx, alice.ID, bob.ID, true)
	require.NoError(t, err)

	first := publishTestPhoto(t, svcs, bob.ID, "sunset")
	second := publishTestPhoto(t, svcs, bob.ID, "beach")

	views, total, err := svcs.Photos.Feed(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, views, 2)

	got := map[uint]bool{views[0].ID: true, views[1].ID: true}
	assert.True(t, got[first.ID])
	assert.True(t, got[second.ID])
	assert.Equal(t, "bob", views[0].Author.Username)

	// Bob never sees his own photos in his inbox.
	_, total, err = svcs.Photos.Feed(ctx, bob.ID, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTopTagsRankedByUsage(t *testing.T) {
	svcs, _, _ := newTestServices(t)
	ctx := context.Background()
	bob := mustCreateUser(t, svcs, "bob")

	publishTestPhoto(t, svcs, bob.ID, "sunset", "beach")
	publishTestPhoto(t, svcs, bob.ID, "sunset")
	publishTestPhoto(t, svcs, bob.ID, "sunrise")

	tags, err := svcs.Photos.TopTags(ctx, "", 10)
	require.NoError(t, err)
	require.NotEmpty(t, tags)
	assert.Equal(t, "sunset", tags[0].Tag)
	assert.Equal(t, int64(2), tags[0].Count)

	prefixed, err := svcs.Photos.TopTags(ctx, "sun", 10)
	require.NoError(t, err)
	assert.Len(t, prefixed, 2)
}
