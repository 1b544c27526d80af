/* contests.go
 * Contains the methods for interacting with the contests collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListContests does a full scan of the contests collection. Admin-only by
// contract; the access guard on the route enforces that, not this layer.
// Postconditions: Returns all contest documents, or an error if it occurs
func (s *Store) ListContests() ([]Contest, error) {
	return s.findContests(bson.M{})
}

// ListPopularContests returns contests ordered by participant count, highest
// first, truncated to limit
// Preconditions: Receives the maximum number of contests to return
// Postconditions: Returns up to limit contests in descending popularity order, or an error if it occurs
func (s *Store) ListPopularContests(limit int64) ([]Contest, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "participants", Value: -1}}).
		SetLimit(limit)
	return s.findContests(bson.M{}, opts)
}

// ListContestsByType returns contests whose type exactly matches ctype. The
// caller is responsible for canonicalising the term first; this is a lookup
// against a controlled vocabulary, not a substring search.
func (s *Store) ListContestsByType(ctype string) ([]Contest, error) {
	return s.findContests(bson.M{"type": ctype})
}

// ListAcceptedContests returns accepted contests, optionally narrowed to a
// single type. An empty ctype means no type filter.
func (s *Store) ListAcceptedContests(ctype string) ([]Contest, error) {
	query := bson.M{"status": "accepted"}
	if ctype != "" {
		query["type"] = ctype
	}
	return s.findContests(query)
}

// ListContestsByCreator returns the contests created by the given email
func (s *Store) ListContestsByCreator(email string) ([]Contest, error) {
	return s.findContests(bson.M{"email": email})
}

// InsertContest inserts a new contest document as supplied by the caller.
// Status is whatever the caller set; this layer does not force "pending".
// Postconditions: Returns the raw insert acknowledgement, or an error if it occurs
func (s *Store) InsertContest(contest Contest) (*mongo.InsertOneResult, error) {
	res, err := s.Collections.Contests.InsertOne(context.TODO(), contest)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contest: %w", err)
	}
	return res, nil
}

// GetContest fetches a single contest by its hex id
// Preconditions: Receives the hex form of the contest's store-native identifier
// Postconditions: Returns the contest, ErrInvalidID for a malformed id, or
// mongo.ErrNoDocuments if no contest has that id
func (s *Store) GetContest(id string) (Contest, error) {
	oid, err := objectID(id)
	if err != nil {
		return Contest{}, err
	}

	var contest Contest
	err = s.Collections.Contests.FindOne(context.TODO(), bson.M{"_id": oid}).Decode(&contest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return Contest{}, err
		}
		return Contest{}, fmt.Errorf("error fetching contest from db: %w", err)
	}
	return contest, nil
}

// DeleteContest removes a contest by its hex id
func (s *Store) DeleteContest(id string) (*mongo.DeleteResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Contests.DeleteOne(context.TODO(), bson.M{"_id": oid})
	if err != nil {
		return nil, fmt.Errorf("failed to delete contest: %w", err)
	}
	return res, nil
}

// UpdateContest applies a $set of the supplied fields to a contest
// Preconditions: Receives the contest's hex id and the fields to set; the
// caller must not include _id in the fields
// Postconditions: Returns the raw update acknowledgement, or an error if it occurs
func (s *Store) UpdateContest(id string, fields bson.M) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Contests.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$set": fields},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update contest: %w", err)
	}
	return res, nil
}

// AcceptContest flips a pending contest's status to accepted
func (s *Store) AcceptContest(id string) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Contests.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": "accepted"}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update contest status: %w", err)
	}
	return res, nil
}

// SetContestWinner records the winning registration's id on the contest.
// The at-most-once rule lives in the workflow, which reads the contest first;
// this method is the single-document write only.
func (s *Store) SetContestWinner(id string, registrationId string) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Contests.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"winner": registrationId}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set contest winner: %w", err)
	}
	return res, nil
}

// IncrementParticipants atomically bumps a contest's participant counter by
// one. Per-document atomicity is what makes concurrent registrations safe.
func (s *Store) IncrementParticipants(id string) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Contests.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"participants": 1}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to increment participants: %w", err)
	}
	return res, nil
}

// findContests runs a find against the contests collection and unpacks the
// cursor into a slice
func (s *Store) findContests(filter bson.M, opts ...*options.FindOptions) ([]Contest, error) {
	cursor, err := s.Collections.Contests.Find(context.TODO(), filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error fetching contests from db: %w", err)
	}

	var results []Contest
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of contests: %w", err)
	}
	return results, nil
}
