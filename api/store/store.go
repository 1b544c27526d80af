/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * contests, users and registrations. Each of these files contain methods for interacting with that
 * collection of the database
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ErrInvalidID is returned when a path or body value is not a valid
// store-native (hex ObjectID) identifier
var ErrInvalidID = errors.New("invalid id")

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Contests      *mongo.Collection
		Users         *mongo.Collection
		Registrations *mongo.Collection
	}
}

// NewStore initialises the db connection and collection handles. The
// deployment is pinged before the store is handed out, so a dead database
// fails startup instead of leaving the service running with dead routes.
// Preconditions: Receives strings containing dbName and mongoURI
// Postconditions: Returns pointer to the Store object, or error if the connection or ping fails
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping deployment: %w", err)
	}

	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Contests = db.Collection("contests")
	s.Collections.Users = db.Collection("users")
	s.Collections.Registrations = db.Collection("registrations")

	return s, nil
}

// Ping checks the deployment is still reachable. Used as the readiness signal.
func (s *Store) Ping() error {
	return s.Client.Ping(context.TODO(), readpref.Primary())
}

// Disconnect closes the underlying client connection
func (s *Store) Disconnect() error {
	return s.Client.Disconnect(context.TODO())
}

// objectID parses a store-native identifier from its hex form
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// ValidateID checks that id is a well-formed store-native identifier without
// touching the database. Callers use it to reject malformed ids before a
// multi-step write begins.
func ValidateID(id string) error {
	_, err := objectID(id)
	return err
}
