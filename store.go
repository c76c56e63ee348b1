package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

const storeTimeout = 10 * time.Second

// Collection names. blogs is authored out-of-band and only read here;
// the other two are only ever written by the form endpoints.
const (
	collBlogs         = "blogs"
	collContacts      = "contact_submissions"
	collSubscriptions = "newsletter_subscriptions"
)

// Store wraps a MongoDB database and provides the document operations the
// query layer and form endpoints need. All operations are fail-loud;
// softening read failures is the query layer's job.
type Store struct {
	client        *mongo.Client
	posts         *mongo.Collection
	contacts      *mongo.Collection
	subscriptions *mongo.Collection
}

// Dial connects to MongoDB, verifies the connection, and binds the three
// collections. The returned Store is safe for concurrent use.
func Dial(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}
	db := client.Database(database)
	return &Store{
		client:        client,
		posts:         db.Collection(collBlogs),
		contacts:      db.Collection(collContacts),
		subscriptions: db.Collection(collSubscriptions),
	}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping verifies the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}

// AllPosts returns every document in the blogs collection, drafts
// included. Status filtering happens in the query layer so the collection
// needs no compound index per filter combination.
func (s *Store) AllPosts(ctx context.Context) ([]BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	cur, err := s.posts.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var posts []BlogPost
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// PostBySlug returns the published post with the given slug. Slug
// uniqueness is an authoring convention this service does not enforce; on
// duplicates the store's return order decides which document wins.
func (s *Store) PostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	var post BlogPost
	err := s.posts.FindOne(ctx, bson.D{
		{Key: "slug", Value: slug},
		{Key: "status", Value: StatusPublished},
	}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return BlogPost{}, ErrNotFound
	}
	if err != nil {
		return BlogPost{}, err
	}
	return post, nil
}

// InsertContact writes one contact submission. Optional fields are stored
// as explicit nulls, and the timestamp is assigned here, never taken from
// the client.
func (s *Store) InsertContact(ctx context.Context, sub ContactSubmission) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	res, err := s.contacts.InsertOne(ctx, bson.D{
		{Key: "name", Value: sub.Name},
		{Key: "email", Value: sub.Email},
		{Key: "phone", Value: orNull(sub.Phone)},
		{Key: "company", Value: orNull(sub.Company)},
		{Key: "projectName", Value: orNull(sub.ProjectName)},
		{Key: "projectBudget", Value: orNull(sub.ProjectBudget)},
		{Key: "projectTimeline", Value: orNull(sub.ProjectTimeline)},
		{Key: "projectType", Value: orNull(sub.ProjectType)},
		{Key: "message", Value: orNull(sub.Message)},
		{Key: "timestamp", Value: time.Now().UTC()},
	})
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

// HasActiveSubscription reports whether an active subscription exists for
// the given email. Callers lowercase the email first.
func (s *Store) HasActiveSubscription(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	n, err := s.subscriptions.CountDocuments(ctx, bson.D{
		{Key: "email", Value: email},
		{Key: "status", Value: SubscriptionActive},
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertSubscription writes one active subscription with a server-assigned
// subscribedAt. The duplicate check and this insert are not atomic; two
// concurrent subscribes for the same email can both land. Closing that
// race needs a unique index on (email, status) in the collection.
func (s *Store) InsertSubscription(ctx context.Context, sub NewsletterSubscription) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	res, err := s.subscriptions.InsertOne(ctx, bson.D{
		{Key: "email", Value: sub.Email},
		{Key: "subscribedAt", Value: time.Now().UTC()},
		{Key: "status", Value: SubscriptionActive},
		{Key: "source", Value: sub.Source},
		{Key: "locale", Value: sub.Locale},
	})
	if err != nil {
		return "", err
	}
	return insertedID(res), nil
}

func insertedID(res *mongo.InsertOneResult) string {
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		return id.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

// orNull folds an empty optional field to an explicit null.
func orNull(s string) any {
	if s == "" {
		return nil
	}
	return s
}
