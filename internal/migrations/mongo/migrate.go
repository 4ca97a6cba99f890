package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"campusbook/internal/migrations/mongo/validators"
	"campusbook/pkg/model"
)

var (
	FacilitiesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "facility_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "start_time", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
		}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	// Abandoned advisory locks are reclaimed by Mongo's TTL monitor.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Facilities": {
			Indexes:   FacilitiesIndexes,
			Validator: validators.FacilityValidator,
		},
		"Users": {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Booking_locks": {
			Indexes:   BookingLocksIndexes,
			Validator: validators.BookingLockValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("Collection %s already exists, updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}

// SeedDemoData inserts a starter set of facilities and users into an empty
// database so a fresh install has something to book.
func SeedDemoData(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	now := time.Now().UTC().Truncate(time.Millisecond)

	facilities := db.Collection("Facilities")
	count, err := facilities.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count facilities: %w", err)
	}
	if count == 0 {
		demo := []any{
			model.Facility{Name: "Main Gymnasium", Location: "North Campus", Capacity: 120, CreatedAt: now},
			model.Facility{Name: "Olympic Pool", Location: "Sports Complex", Capacity: 60, CreatedAt: now},
			model.Facility{Name: "Tennis Court A", Location: "East Fields", Capacity: 4, CreatedAt: now},
			model.Facility{Name: "Lecture Hall 3", Location: "Science Building", Capacity: 200, CreatedAt: now},
		}
		if _, err := facilities.InsertMany(ctx, demo); err != nil {
			return fmt.Errorf("failed to seed facilities: %w", err)
		}
		fmt.Printf("Seeded %d facilities\n", len(demo))
	}

	users := db.Collection("Users")
	count, err = users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 {
		demo := []any{
			model.User{Name: "Dana Levi", Email: "dana.levi@example.edu", CreatedAt: now},
			model.User{Name: "Omar Haddad", Email: "omar.haddad@example.edu", CreatedAt: now},
			model.User{Name: "Maya Cohen", Email: "maya.cohen@example.edu", CreatedAt: now},
		}
		if _, err := users.InsertMany(ctx, demo); err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		fmt.Printf("Seeded %d users\n", len(demo))
	}

	return nil
}
