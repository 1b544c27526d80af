/* registrations.go
 * Contains the methods for interacting with the registrations collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InsertRegistration inserts a registration row. Nothing here enforces one
// registration per (contestId, email); the workflow carries that known risk.
func (s *Store) InsertRegistration(reg Registration) (*mongo.InsertOneResult, error) {
	res, err := s.Collections.Registrations.InsertOne(context.TODO(), reg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}
	return res, nil
}

// ListRegistrationsByEmail returns the registrations a user has entered
func (s *Store) ListRegistrationsByEmail(email string) ([]Registration, error) {
	return s.findRegistrations(bson.M{"email": email})
}

// ListRegistrationsByOwner returns registrations for contests run by the
// given creator email (denormalized onto the row at registration time)
func (s *Store) ListRegistrationsByOwner(email string) ([]Registration, error) {
	return s.findRegistrations(bson.M{"contestOwner": email})
}

// ListWinningRegistrations returns the registrations a user has won
func (s *Store) ListWinningRegistrations(email string) ([]Registration, error) {
	return s.findRegistrations(bson.M{"email": email, "winner": true})
}

// MarkParticipated flips the participated flag on a registration. There are
// no preconditions; repeating the call is a no-op in effect.
func (s *Store) MarkParticipated(id string) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Registrations.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"participated": true}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update registration status: %w", err)
	}
	return res, nil
}

// MarkRegistrationWinner flips the winner flag on the registration addressed
// by its own id. No upsert: a winner flag only means something on a row that
// exists, so a non-matching id reports zero modifications instead of
// fabricating a document.
func (s *Store) MarkRegistrationWinner(id string) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Registrations.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"winner": true}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to mark registration winner: %w", err)
	}
	return res, nil
}

// findRegistrations runs a find against the registrations collection and
// unpacks the cursor into a slice
func (s *Store) findRegistrations(filter bson.M, opts ...*options.FindOptions) ([]Registration, error) {
	cursor, err := s.Collections.Registrations.Find(context.TODO(), filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error fetching registrations from db: %w", err)
	}

	var results []Registration
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of registrations: %w", err)
	}
	return results, nil
}
