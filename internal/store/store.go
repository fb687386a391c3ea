// internal/store/store.go

// Package store wraps the MongoDB collections behind defensive accessors.
// A store that cannot reach MongoDB at startup degrades to "unavailable"
// instead of preventing the process from serving.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	databaseName    = "eleven_labs_assistant"
	usersCollection = "users"
	notesCollection = "notes"

	connectTimeout = 10 * time.Second
)

var (
	// ErrUnavailable indicates the store never reached MongoDB at startup.
	ErrUnavailable = errors.New("database connection not available")
	// ErrNotFound indicates no matching record exists.
	ErrNotFound = errors.New("record not found")
)

// UserRecord is one intake submission. Records are immutable; every
// submission inserts a new one.
type UserRecord struct {
	FirstName       string    `bson:"first_name"`
	FishingLocation string    `bson:"fishing_location"`
	CreatedAt       time.Time `bson:"created_at"`
}

type noteRecord struct {
	Note string `bson:"note"`
}

// Store holds the MongoDB connection and its availability state. It is
// constructed once at process start and shared by every handler.
type Store struct {
	client    *mongo.Client
	users     *mongo.Collection
	notes     *mongo.Collection
	available bool
	logger    *zap.Logger
}

// New connects to MongoDB and verifies the connection with a ping. On any
// failure the returned store is degraded: writes report failure and reads
// report ErrUnavailable, without attempting network calls.
func New(ctx context.Context, uri string, logger *zap.Logger) *Store {
	s := &Store{logger: logger}

	if uri == "" {
		logger.Error("MONGODB_URI environment variable is not set")
		return s
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", zap.Error(err))
		return s
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Error("Failed to ping MongoDB", zap.Error(err))
		_ = client.Disconnect(context.Background())
		return s
	}

	db := client.Database(databaseName)
	s.client = client
	s.users = db.Collection(usersCollection)
	s.notes = db.Collection(notesCollection)
	s.available = true
	logger.Info("Successfully connected to MongoDB")
	return s
}

// Available reports whether the store reached MongoDB at startup.
func (s *Store) Available() bool {
	return s.available
}

// SaveUser inserts a new user record. Returns false when the store is
// unavailable or the insert fails.
func (s *Store) SaveUser(ctx context.Context, firstName, fishingLocation string) bool {
	if !s.available {
		s.logger.Error("Database connection not available")
		return false
	}

	result, err := s.users.InsertOne(ctx, UserRecord{
		FirstName:       firstName,
		FishingLocation: fishingLocation,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Error saving user info", zap.Error(err))
		return false
	}
	return result.InsertedID != nil
}

// LatestUserByName returns the most recently created record for an exact
// first-name match. Ties on created_at break by insertion order.
func (s *Store) LatestUserByName(ctx context.Context, firstName string) (*UserRecord, error) {
	if !s.available {
		return nil, ErrUnavailable
	}

	opts := options.FindOne().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	var record UserRecord
	err := s.users.FindOne(ctx, bson.D{{Key: "first_name", Value: firstName}}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("Error fetching user info", zap.Error(err))
		return nil, err
	}
	return &record, nil
}

// SaveNote inserts a new global note.
func (s *Store) SaveNote(ctx context.Context, text string) bool {
	if !s.available {
		s.logger.Error("Database connection not available")
		return false
	}

	result, err := s.notes.InsertOne(ctx, noteRecord{Note: text})
	if err != nil {
		s.logger.Error("Error saving note", zap.Error(err))
		return false
	}
	return result.InsertedID != nil
}

// LatestNote returns the single most recently created note.
func (s *Store) LatestNote(ctx context.Context) (string, error) {
	if !s.available {
		return "", ErrUnavailable
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})

	var record noteRecord
	err := s.notes.FindOne(ctx, bson.D{}, opts).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrNotFound
	}
	if err != nil {
		s.logger.Error("Error fetching note", zap.Error(err))
		return "", err
	}
	return record.Note, nil
}

// Close disconnects from MongoDB if a connection was established.
func (s *Store) Close(ctx context.Context) {
	if s.client != nil {
		if err := s.client.Disconnect(ctx); err != nil {
			s.logger.Error("Error disconnecting from MongoDB", zap.Error(err))
		}
	}
}
