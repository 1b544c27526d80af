/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, handlers should
 * only call through this facade, not the store sub package directly.
 */

package api

import (
	"errors"
	"fmt"

	"contest-beaters/api/logic"
	"contest-beaters/api/shared"
	"contest-beaters/api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrWinnerAlreadyDeclared is returned when a contest already has its
	// winner set. The winner is assigned at most once and never overwritten.
	ErrWinnerAlreadyDeclared = errors.New("contest winner already declared")
	// ErrWinnerNotRecorded is returned when one of the two winner writes
	// matched nothing, leaving the declaration incomplete
	ErrWinnerNotRecorded = errors.New("winner declaration not recorded")
)

// popularLimit caps the popular-contests listing
const popularLimit = 5

// API provides methods for interacting with the contest platform data layer
type API struct {
	Store store.Interface
}

// NewAPI creates a new API instance backed by a live store connection
func NewAPI(dbName string, mongoURI string) (*API, error) {
	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &API{
		Store: s,
	}, nil
}

/*
 * Contest operations
 */

// ListContests returns every contest. Admin-only by contract; the route's
// access guard enforces that.
func (a *API) ListContests() ([]store.Contest, error) {
	return a.Store.ListContests()
}

// PopularContests returns the top contests by participant count
func (a *API) PopularContests() ([]store.Contest, error) {
	return a.Store.ListPopularContests(popularLimit)
}

// SearchContests canonicalises the search term and looks up contests whose
// type matches it exactly. "web" finds type "Web" and nothing else.
func (a *API) SearchContests(term string) ([]store.Contest, error) {
	return a.Store.ListContestsByType(logic.CapitalizeType(term))
}

// AcceptedContests returns accepted contests. The type "All" is a sentinel
// meaning no type filter.
func (a *API) AcceptedContests(ctype string) ([]store.Contest, error) {
	if ctype == "All" {
		ctype = ""
	}
	return a.Store.ListAcceptedContests(ctype)
}

// ContestsByCreator returns the contests created by the given email
func (a *API) ContestsByCreator(email string) ([]store.Contest, error) {
	return a.Store.ListContestsByCreator(email)
}

// CreateContest inserts a contest as supplied. Status is not forced to
// pending here; the caller's value is stored as-is.
func (a *API) CreateContest(contest store.Contest) (*mongo.InsertOneResult, error) {
	return a.Store.InsertContest(contest)
}

// GetContest fetches a single contest by hex id
func (a *API) GetContest(id string) (store.Contest, error) {
	return a.Store.GetContest(id)
}

// DeleteContest removes a contest by hex id
func (a *API) DeleteContest(id string) (*mongo.DeleteResult, error) {
	return a.Store.DeleteContest(id)
}

// UpdateContest applies the supplied field updates to a contest. The _id
// field is stripped so a stale client copy can never re-key the document.
func (a *API) UpdateContest(id string, fields bson.M) (*mongo.UpdateResult, error) {
	delete(fields, "_id")
	return a.Store.UpdateContest(id, fields)
}

// AcceptContest marks a contest accepted
func (a *API) AcceptContest(id string) (*mongo.UpdateResult, error) {
	return a.Store.AcceptContest(id)
}

/*
 * Registration workflow
 */

// RegisterForContest inserts a registration row and then bumps the parent
// contest's participant counter. The increment runs only after the insert is
// acknowledged; if the increment fails the registration row stands, there is
// no compensating rollback. Cross-document atomicity is explicitly not
// provided here.
// Preconditions: receives the registration payload including the parent contest's hex id
// Postconditions: returns the counter update acknowledgement, or an error if either step fails
func (a *API) RegisterForContest(req shared.RegistrationRequest) (*mongo.UpdateResult, error) {
	reg := store.Registration{
		ContestId:    req.ContestId,
		Name:         req.Name,
		Email:        req.Email,
		Contest:      req.Contest,
		ContestOwner: req.ContestOwner,
		Deadline:     req.Deadline,
		Participated: false,
		Winner:       false,
	}

	res, err := a.Store.InsertRegistration(reg)
	if err != nil {
		return nil, err
	}
	if res.InsertedID == nil {
		return nil, fmt.Errorf("registration insert was not acknowledged")
	}

	return a.Store.IncrementParticipants(req.ContestId)
}

// ConfirmParticipation marks a registration as attended. Repeating the call
// is harmless.
func (a *API) ConfirmParticipation(id string) (*mongo.UpdateResult, error) {
	return a.Store.MarkParticipated(id)
}

// DeclareWinner assigns the winning registration to a contest. Both ids are
// validated before anything is written: the contest's winner slot is consumed
// at most once, so a malformed registration id must fail here rather than
// after the contest write has burned the slot on a garbage value. The contest
// is then read and rejected if a winner is already set, the winner id is
// written to the contest and the flag to the registration, in that order.
// A crash between the two writes leaves the contest marked but the
// registration unflagged; callers reconcile rather than assume atomicity.
// Preconditions: receives the contest's hex id and the winning registration's hex id
// Postconditions: returns nil when both writes modified a document,
// ErrInvalidID for a malformed id (nothing written),
// ErrWinnerAlreadyDeclared when the contest already has a winner, or
// ErrWinnerNotRecorded when either write matched nothing
func (a *API) DeclareWinner(contestId string, registrationId string) error {
	if err := store.ValidateID(contestId); err != nil {
		return err
	}
	if err := store.ValidateID(registrationId); err != nil {
		return err
	}

	contest, err := a.Store.GetContest(contestId)
	if err != nil {
		return err
	}
	if contest.Winner != "" {
		return ErrWinnerAlreadyDeclared
	}

	res, err := a.Store.SetContestWinner(contestId, registrationId)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrWinnerNotRecorded
	}

	regRes, err := a.Store.MarkRegistrationWinner(registrationId)
	if err != nil {
		return fmt.Errorf("contest winner recorded but registration flag failed: %w", err)
	}
	if regRes.ModifiedCount == 0 {
		return ErrWinnerNotRecorded
	}
	return nil
}

// RegistrationsByEntrant returns a user's registrations, optionally ordered
// by deadline, most recent first
func (a *API) RegistrationsByEntrant(email string, sortByDeadline bool) ([]store.Registration, error) {
	regs, err := a.Store.ListRegistrationsByEmail(email)
	if err != nil {
		return nil, err
	}
	if sortByDeadline {
		logic.SortByDeadlineDesc(regs, func(r store.Registration) string { return r.Deadline })
	}
	return regs, nil
}

// RegistrationsByOwner returns the registrations entered into contests run
// by the given creator
func (a *API) RegistrationsByOwner(email string) ([]store.Registration, error) {
	return a.Store.ListRegistrationsByOwner(email)
}

// WinningRegistrations returns the registrations a user has won
func (a *API) WinningRegistrations(email string) ([]store.Registration, error) {
	return a.Store.ListWinningRegistrations(email)
}

/*
 * User directory
 */

// UsersExcluding returns every user except the given email
func (a *API) UsersExcluding(email string) ([]store.User, error) {
	return a.Store.ListUsersExcluding(email)
}

// Creators returns all users holding the creator role
func (a *API) Creators() ([]store.User, error) {
	return a.Store.ListCreators()
}

// AddUser is idempotent on email: when a record already exists it is
// returned unchanged and nothing is written, otherwise the user is inserted.
// Postconditions: exactly one of existing and inserted is non-nil on success
func (a *API) AddUser(user store.User) (existing *store.User, inserted *mongo.InsertOneResult, err error) {
	found, err := a.Store.FindUserByEmail(user.Email)
	if err == nil {
		return &found, nil, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil, err
	}

	res, err := a.Store.InsertUser(user)
	if err != nil {
		return nil, nil, err
	}
	return nil, res, nil
}

// RoleOf returns the stored role for an email, defaulting to "user" when
// the email is unknown or the record has no role set
func (a *API) RoleOf(email string) (string, error) {
	user, err := a.Store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.RoleUser, nil
		}
		return "", err
	}
	if user.Role == "" {
		return shared.RoleUser, nil
	}
	return user.Role, nil
}

// SetUserRole changes the role of the user addressed by hex id. The new
// role only reaches authorization decisions once the user re-authenticates,
// since roles ride inside issued tokens for their lifetime.
func (a *API) SetUserRole(id string, role string) (*mongo.UpdateResult, error) {
	return a.Store.UpdateUserRole(id, role)
}

// UpdateUserProfile updates the display name and image for an email
func (a *API) UpdateUserProfile(email string, name string, image string) (*mongo.UpdateResult, error) {
	return a.Store.UpdateUserProfile(email, name, image)
}
