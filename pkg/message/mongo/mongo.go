// Package mongo stores greeting messages in a MongoDB collection.
//
// Messages live in the "messages" collection keyed by their integer id.
// Ids are allocated from a counter document in "counters", so Create is
// safe across several server processes sharing one database.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	yerrors "github.com/matzehuels/yuletree/pkg/errors"
	"github.com/matzehuels/yuletree/pkg/message"
)

const (
	// DefaultDatabase is used when the connection URI names no database.
	DefaultDatabase = "yuletree"

	messagesCollection = "messages"
	countersCollection = "counters"
	counterID          = "messages"
)

// Store is a [message.Store] backed by MongoDB.
type Store struct {
	client   *mongo.Client
	messages *mongo.Collection
	counters *mongo.Collection
}

var _ message.Store = (*Store)(nil)

// Open connects to uri, selects database db (DefaultDatabase when empty)
// and inserts seed when the collection is empty.
func Open(ctx context.Context, uri, db string, seed []message.Message) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "connect mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "ping mongodb")
	}
	if db == "" {
		db = DefaultDatabase
	}
	d := client.Database(db)
	s := &Store{
		client:   client,
		messages: d.Collection(messagesCollection),
		counters: d.Collection(countersCollection),
	}
	if err := s.seed(ctx, seed); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) seed(ctx context.Context, seed []message.Message) error {
	if len(seed) == 0 {
		return nil
	}
	n, err := s.messages.CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count messages: %w", err)
	}
	if n > 0 {
		return nil
	}

	docs := make([]any, len(seed))
	maxID := 0
	for i, m := range seed {
		docs[i] = m
		maxID = max(maxID, m.ID)
	}
	if _, err := s.messages.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	_, err = s.counters.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: counterID}},
		bson.D{{Key: "$max", Value: bson.D{{Key: "seq", Value: maxID}}}},
		options.Update().SetUpsert(true),
	)
	return err
}

// List returns all messages ordered by id.
func (s *Store) List(ctx context.Context) ([]message.Message, error) {
	cur, err := s.messages.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "list messages")
	}
	msgs := []message.Message{}
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}

// Get returns the message with id.
func (s *Store) Get(ctx context.Context, id int) (message.Message, error) {
	var m message.Message
	err := s.messages.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return message.Message{}, message.ErrNotFound
	}
	return m, err
}

// Create appends a message with the next counter value as id.
func (s *Store) Create(ctx context.Context, text string) (message.Message, error) {
	text, err := message.Validate(text)
	if err != nil {
		return message.Message{}, err
	}

	var counter struct {
		Seq int `bson:"seq"`
	}
	err = s.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: counterID}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: 1}}}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return message.Message{}, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "allocate message id")
	}

	m := message.Message{ID: counter.Seq, Text: text}
	if _, err := s.messages.InsertOne(ctx, m); err != nil {
		return message.Message{}, yerrors.Wrap(yerrors.ErrCodeStoreUnavailable, err, "insert message")
	}
	return m, nil
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
