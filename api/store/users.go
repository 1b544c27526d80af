/* users.go
 * Contains the methods for interacting with the users collection
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsersExcluding returns every user except the one with the given email.
// Used to render the "other users" admin listing.
func (s *Store) ListUsersExcluding(email string) ([]User, error) {
	filter := bson.M{"email": bson.M{"$nin": []string{email}}}
	return s.findUsers(filter)
}

// ListCreators returns all users holding the creator role
func (s *Store) ListCreators() ([]User, error) {
	return s.findUsers(bson.M{"role": "creator"})
}

// FindUserByEmail fetches a user record by its unique email key
// Postconditions: Returns the user, or mongo.ErrNoDocuments when the email is unknown
func (s *Store) FindUserByEmail(email string) (User, error) {
	var user User
	err := s.Collections.Users.FindOne(context.TODO(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return User{}, err
		}
		return User{}, fmt.Errorf("error fetching user from db: %w", err)
	}
	return user, nil
}

// InsertUser inserts a new user record. Idempotency on email is the
// workflow's job (lookup first); this is the raw insert.
func (s *Store) InsertUser(user User) (*mongo.InsertOneResult, error) {
	res, err := s.Collections.Users.InsertOne(context.TODO(), user)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return res, nil
}

// UpdateUserRole sets the role of the user addressed by hex id
func (s *Store) UpdateUserRole(id string, role string) (*mongo.UpdateResult, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	res, err := s.Collections.Users.UpdateOne(
		context.TODO(),
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}
	return res, nil
}

// UpdateUserProfile sets the display name and image of the user addressed by
// email
func (s *Store) UpdateUserProfile(email string, name string, image string) (*mongo.UpdateResult, error) {
	res, err := s.Collections.Users.UpdateOne(
		context.TODO(),
		bson.M{"email": email},
		bson.M{"$set": bson.M{"name": name, "image": image}},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return res, nil
}

// findUsers runs a find against the users collection and unpacks the cursor
// into a slice
func (s *Store) findUsers(filter bson.M, opts ...*options.FindOptions) ([]User, error) {
	cursor, err := s.Collections.Users.Find(context.TODO(), filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("error fetching users from db: %w", err)
	}

	var results []User
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of users: %w", err)
	}
	return results, nil
}
