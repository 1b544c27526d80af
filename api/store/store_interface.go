/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	// Contests
	ListContests() ([]Contest, error)
	ListPopularContests(limit int64) ([]Contest, error)
	ListContestsByType(ctype string) ([]Contest, error)
	ListAcceptedContests(ctype string) ([]Contest, error)
	ListContestsByCreator(email string) ([]Contest, error)
	InsertContest(contest Contest) (*mongo.InsertOneResult, error)
	GetContest(id string) (Contest, error)
	DeleteContest(id string) (*mongo.DeleteResult, error)
	UpdateContest(id string, fields bson.M) (*mongo.UpdateResult, error)
	AcceptContest(id string) (*mongo.UpdateResult, error)
	SetContestWinner(id string, registrationId string) (*mongo.UpdateResult, error)
	IncrementParticipants(id string) (*mongo.UpdateResult, error)

	// Users
	ListUsersExcluding(email string) ([]User, error)
	ListCreators() ([]User, error)
	FindUserByEmail(email string) (User, error)
	InsertUser(user User) (*mongo.InsertOneResult, error)
	UpdateUserRole(id string, role string) (*mongo.UpdateResult, error)
	UpdateUserProfile(email string, name string, image string) (*mongo.UpdateResult, error)

	// Registrations
	InsertRegistration(reg Registration) (*mongo.InsertOneResult, error)
	ListRegistrationsByEmail(email string) ([]Registration, error)
	ListRegistrationsByOwner(email string) ([]Registration, error)
	ListWinningRegistrations(email string) ([]Registration, error)
	MarkParticipated(id string) (*mongo.UpdateResult, error)
	MarkRegistrationWinner(id string) (*mongo.UpdateResult, error)

	// Lifecycle
	Ping() error
	Disconnect() error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)
