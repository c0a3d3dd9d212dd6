package search

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	photoCollection = "photos"
	userCollection  = "users"
)

// MongoIndex implements Index on a MongoDB database with text indexes over the
// searchable fields. The client handle is process-wide and safe for concurrent
// use; no transactional guarantee is assumed from the service.
type MongoIndex struct {
	photos *mongo.Collection
	users  *mongo.Collection
}

// NewMongoIndex creates a MongoIndex over the given database.
func NewMongoIndex(db *mongo.Database) *MongoIndex {
	return &MongoIndex{
		photos: db.Collection(photoCollection),
		users:  db.Collection(userCollection),
	}
}

// EnsureIndexes creates the text indexes backing SearchPhotos and SearchUsers.
// Called once at process start.
func (i *MongoIndex) EnsureIndexes(ctx context.Context) error {
	_, err := i.photos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "description", Value: "text"},
			{Key: "location", Value: "text"},
			{Key: "tags", Value: "text"},
			{Key: "comments", Value: "text"},
		},
	})
	if err != nil {
		return err
	}
	_, err = i.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "username", Value: "text"},
			{Key: "name", Value: "text"},
			{Key: "description", Value: "text"},
		},
	})
	return err
}

// SavePhoto upserts the whole photo document keyed by photo id.
func (i *MongoIndex) SavePhoto(ctx context.Context, doc *PhotoDocument) error {
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if doc.Comments == nil {
		doc.Comments = []string{}
	}
	opts := options.Replace().SetUpsert(true)
	_, err := i.photos.ReplaceOne(ctx, bson.M{"_id": doc.PhotoID}, doc, opts)
	return err
}

// AddPhotoComment pushes a single comment onto the document's comment list
// without refetching the rest of the document.
func (i *MongoIndex) AddPhotoComment(ctx context.Context, photoID uint, comment string) error {
	_, err := i.photos.UpdateOne(ctx,
		bson.M{"_id": photoID},
		bson.M{"$push": bson.M{"comments": comment}})
	return err
}

// SetPhotoComments overwrites the comment-list field wholesale. Concurrent
// overwrites race and the last writer wins; that is an accepted weak point of
// the mirror only.
func (i *MongoIndex) SetPhotoComments(ctx context.Context, photoID uint, comments []string) error {
	if comments == nil {
		comments = []string{}
	}
	_, err := i.photos.UpdateOne(ctx,
		bson.M{"_id": photoID},
		bson.M{"$set": bson.M{"comments": comments}})
	return err
}

// DeletePhoto removes the photo's document entirely.
func (i *MongoIndex) DeletePhoto(ctx context.Context, photoID uint) error {
	_, err := i.photos.DeleteOne(ctx, bson.M{"_id": photoID})
	return err
}

// SaveUser upserts the whole user document keyed by user id.
func (i *MongoIndex) SaveUser(ctx context.Context, doc *UserDocument) error {
	opts := options.Replace().SetUpsert(true)
	_, err := i.users.ReplaceOne(ctx, bson.M{"_id": doc.UserID}, doc, opts)
	return err
}

// SearchPhotos runs a text query over the photo documents, best match first.
func (i *MongoIndex) SearchPhotos(ctx context.Context, query string, limit int) ([]PhotoDocument, error) {
	return findByText[PhotoDocument](ctx, i.photos, query, limit)
}

// SearchUsers runs a text query over the user documents, best match first.
func (i *MongoIndex) SearchUsers(ctx context.Context, query string, limit int) ([]UserDocument, error) {
	return findByText[UserDocument](ctx, i.users, query, limit)
}

func findByText[T any](ctx context.Context, coll *mongo.Collection, query string, limit int) ([]T, error) {
	docs := []T{}
	filter := bson.M{"$text": bson.M{"$search": query}}
	opts := options.Find().
		SetLimit(int64(limit)).
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
