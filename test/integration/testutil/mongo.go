package testutil

import (
	"context"
	"testing"
	"time"

	"campusbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "campusbook"
	ConnectionTimeout   = 10 * time.Second

	DefaultHealthCheckTimeout = 30 * time.Second

	FacilitiesCollection = "Facilities"
	UsersCollection      = "Users"
	BookingsCollection   = "Bookings"
)

// MongoHelper seeds and cleans the test database directly, bypassing the API.
type MongoHelper struct {
	Client   *mongo.Client
	Database *mongo.Database
	DBName   string
}

func NewMongoHelper(t *testing.T, mongoURI, dbName string) *MongoHelper {
	t.Helper()

	if mongoURI == "" {
		mongoURI = DefaultMongoURI
	}
	if dbName == "" {
		dbName = DefaultDatabaseName
	}

	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("failed to ping MongoDB: %v", err)
	}

	return &MongoHelper{
		Client:   client,
		Database: client.Database(dbName),
		DBName:   dbName,
	}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("warning: failed to disconnect from MongoDB: %v", err)
	}
}

// CleanDatabase empties all data collections. Collections and their indexes
// are kept so the running server keeps working between tests.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range []string{BookingsCollection, "Booking_locks", FacilitiesCollection, UsersCollection} {
		if _, err := m.Database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			t.Fatalf("failed to clean collection %s: %v", name, err)
		}
	}
}

// SeedFacility inserts a facility directly and returns its id.
func (m *MongoHelper) SeedFacility(t *testing.T, name, location string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := primitive.NewObjectID()
	_, err := m.Database.Collection(FacilitiesCollection).InsertOne(ctx, bson.M{
		"_id":        id,
		"name":       name,
		"location":   location,
		"capacity":   50,
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to seed facility: %v", err)
	}
	return id.Hex()
}

// SeedUser inserts a user directly and returns its id.
func (m *MongoHelper) SeedUser(t *testing.T, name, email string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := primitive.NewObjectID()
	_, err := m.Database.Collection(UsersCollection).InsertOne(ctx, bson.M{
		"_id":        id,
		"name":       name,
		"email":      email,
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id.Hex()
}

// CountActiveBookings counts non-cancelled bookings for a facility and date.
func (m *MongoHelper) CountActiveBookings(t *testing.T, facilityID string, date model.Date) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := m.Database.Collection(BookingsCollection).CountDocuments(ctx, bson.M{
		"facility_id": facilityID,
		"date":        date,
		"status":      bson.M{"$ne": model.StatusCancelled},
	})
	if err != nil {
		t.Fatalf("failed to count bookings: %v", err)
	}
	return count
}
