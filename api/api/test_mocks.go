/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package and the web handlers
 */

package api

import (
	"sort"

	"contest-beaters/api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the store Interface for testing. Documents live in
// maps keyed by hex id and every method group has an error-injection field
// for exercising failure paths.
type MockStore struct {
	// Storage for mock data
	Contests      map[string]store.Contest
	Users         []store.User
	Registrations map[string]store.Registration

	// Counters for asserting call behaviour
	UserInserts        int
	ParticipantsBumped int

	// Error injection for testing error paths
	ContestFindError      error
	ContestWriteError     error
	UserFindError         error
	UserWriteError        error
	RegistrationListError error
	RegistrationError     error
	PingError             error
}

// NewMockStore creates a new MockStore with empty collections
func NewMockStore() *MockStore {
	return &MockStore{
		Contests:      make(map[string]store.Contest),
		Registrations: make(map[string]store.Registration),
	}
}

// SeedContest stores a contest under a fresh id and returns its hex form
func (m *MockStore) SeedContest(contest store.Contest) string {
	if contest.Id.IsZero() {
		contest.Id = primitive.NewObjectID()
	}
	m.Contests[contest.Id.Hex()] = contest
	return contest.Id.Hex()
}

// SeedRegistration stores a registration under a fresh id and returns its hex form
func (m *MockStore) SeedRegistration(reg store.Registration) string {
	if reg.Id.IsZero() {
		reg.Id = primitive.NewObjectID()
	}
	m.Registrations[reg.Id.Hex()] = reg
	return reg.Id.Hex()
}

// mockID validates a hex id the way the real store does
func mockID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}

func (m *MockStore) ListContests() ([]store.Contest, error) {
	if m.ContestFindError != nil {
		return nil, m.ContestFindError
	}
	return m.contestSlice(func(store.Contest) bool { return true }), nil
}

func (m *MockStore) ListPopularContests(limit int64) ([]store.Contest, error) {
	if m.ContestFindError != nil {
		return nil, m.ContestFindError
	}
	all := m.contestSlice(func(store.Contest) bool { return true })
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Participants > all[j].Participants
	})
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockStore) ListContestsByType(ctype string) ([]store.Contest, error) {
	if m.ContestFindError != nil {
		return nil, m.ContestFindError
	}
	return m.contestSlice(func(c store.Contest) bool { return c.Type == ctype }), nil
}

func (m *MockStore) ListAcceptedContests(ctype string) ([]store.Contest, error) {
	if m.ContestFindError != nil {
		return nil, m.ContestFindError
	}
	return m.contestSlice(func(c store.Contest) bool {
		if c.Status != "accepted" {
			return false
		}
		return ctype == "" || c.Type == ctype
	}), nil
}

func (m *MockStore) ListContestsByCreator(email string) ([]store.Contest, error) {
	if m.ContestFindError != nil {
		return nil, m.ContestFindError
	}
	return m.contestSlice(func(c store.Contest) bool { return c.Email == email }), nil
}

func (m *MockStore) InsertContest(contest store.Contest) (*mongo.InsertOneResult, error) {
	if m.ContestWriteError != nil {
		return nil, m.ContestWriteError
	}
	hex := m.SeedContest(contest)
	oid, _ := primitive.ObjectIDFromHex(hex)
	return &mongo.InsertOneResult{InsertedID: oid}, nil
}

func (m *MockStore) GetContest(id string) (store.Contest, error) {
	if err := mockID(id); err != nil {
		return store.Contest{}, err
	}
	if m.ContestFindError != nil {
		return store.Contest{}, m.ContestFindError
	}
	contest, ok := m.Contests[id]
	if !ok {
		return store.Contest{}, mongo.ErrNoDocuments
	}
	return contest, nil
}

func (m *MockStore) DeleteContest(id string) (*mongo.DeleteResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.ContestWriteError != nil {
		return nil, m.ContestWriteError
	}
	if _, ok := m.Contests[id]; !ok {
		return &mongo.DeleteResult{DeletedCount: 0}, nil
	}
	delete(m.Contests, id)
	return &mongo.DeleteResult{DeletedCount: 1}, nil
}

func (m *MockStore) UpdateContest(id string, fields bson.M) (*mongo.UpdateResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.ContestWriteError != nil {
		return nil, m.ContestWriteError
	}
	contest, ok := m.Contests[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	if title, ok := fields["title"].(string); ok {
		contest.Title = title
	}
	if ctype, ok := fields["type"].(string); ok {
		contest.Type = ctype
	}
	if status, ok := fields["status"].(string); ok {
		contest.Status = status
	}
	m.Contests[id] = contest
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockStore) AcceptContest(id string) (*mongo.UpdateResult, error) {
	return m.UpdateContest(id, bson.M{"status": "accepted"})
}

func (m *MockStore) SetContestWinner(id string, registrationId string) (*mongo.UpdateResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.ContestWriteError != nil {
		return nil, m.ContestWriteError
	}
	contest, ok := m.Contests[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	contest.Winner = registrationId
	m.Contests[id] = contest
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockStore) IncrementParticipants(id string) (*mongo.UpdateResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.ContestWriteError != nil {
		return nil, m.ContestWriteError
	}
	contest, ok := m.Contests[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	contest.Participants++
	m.Contests[id] = contest
	m.ParticipantsBumped++
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockStore) ListUsersExcluding(email string) ([]store.User, error) {
	if m.UserFindError != nil {
		return nil, m.UserFindError
	}
	var out []store.User
	for _, u := range m.Users {
		if u.Email != email {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockStore) ListCreators() ([]store.User, error) {
	if m.UserFindError != nil {
		return nil, m.UserFindError
	}
	var out []store.User
	for _, u := range m.Users {
		if u.Role == "creator" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *MockStore) FindUserByEmail(email string) (store.User, error) {
	if m.UserFindError != nil {
		return store.User{}, m.UserFindError
	}
	for _, u := range m.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return store.User{}, mongo.ErrNoDocuments
}

func (m *MockStore) InsertUser(user store.User) (*mongo.InsertOneResult, error) {
	if m.UserWriteError != nil {
		return nil, m.UserWriteError
	}
	if user.Id.IsZero() {
		user.Id = primitive.NewObjectID()
	}
	m.Users = append(m.Users, user)
	m.UserInserts++
	return &mongo.InsertOneResult{InsertedID: user.Id}, nil
}

func (m *MockStore) UpdateUserRole(id string, role string) (*mongo.UpdateResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.UserWriteError != nil {
		return nil, m.UserWriteError
	}
	for i, u := range m.Users {
		if u.Id.Hex() == id {
			m.Users[i].Role = role
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (m *MockStore) UpdateUserProfile(email string, name string, image string) (*mongo.UpdateResult, error) {
	if m.UserWriteError != nil {
		return nil, m.UserWriteError
	}
	for i, u := range m.Users {
		if u.Email == email {
			m.Users[i].Name = name
			m.Users[i].Image = image
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	return &mongo.UpdateResult{}, nil
}

func (m *MockStore) InsertRegistration(reg store.Registration) (*mongo.InsertOneResult, error) {
	if m.RegistrationError != nil {
		return nil, m.RegistrationError
	}
	hex := m.SeedRegistration(reg)
	oid, _ := primitive.ObjectIDFromHex(hex)
	return &mongo.InsertOneResult{InsertedID: oid}, nil
}

func (m *MockStore) ListRegistrationsByEmail(email string) ([]store.Registration, error) {
	if m.RegistrationListError != nil {
		return nil, m.RegistrationListError
	}
	return m.registrationSlice(func(r store.Registration) bool { return r.Email == email }), nil
}

func (m *MockStore) ListRegistrationsByOwner(email string) ([]store.Registration, error) {
	if m.RegistrationListError != nil {
		return nil, m.RegistrationListError
	}
	return m.registrationSlice(func(r store.Registration) bool { return r.ContestOwner == email }), nil
}

func (m *MockStore) ListWinningRegistrations(email string) ([]store.Registration, error) {
	if m.RegistrationListError != nil {
		return nil, m.RegistrationListError
	}
	return m.registrationSlice(func(r store.Registration) bool { return r.Email == email && r.Winner }), nil
}

func (m *MockStore) MarkParticipated(id string) (*mongo.UpdateResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.RegistrationError != nil {
		return nil, m.RegistrationError
	}
	reg, ok := m.Registrations[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	reg.Participated = true
	m.Registrations[id] = reg
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockStore) MarkRegistrationWinner(id string) (*mongo.UpdateResult, error) {
	if err := mockID(id); err != nil {
		return nil, err
	}
	if m.RegistrationError != nil {
		return nil, m.RegistrationError
	}
	reg, ok := m.Registrations[id]
	if !ok {
		return &mongo.UpdateResult{}, nil
	}
	reg.Winner = true
	m.Registrations[id] = reg
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *MockStore) Ping() error {
	return m.PingError
}

func (m *MockStore) Disconnect() error {
	return nil
}

func (m *MockStore) contestSlice(keep func(store.Contest) bool) []store.Contest {
	var out []store.Contest
	for _, c := range m.Contests {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Id.Hex() < out[j].Id.Hex() })
	return out
}

func (m *MockStore) registrationSlice(keep func(store.Registration) bool) []store.Registration {
	var out []store.Registration
	for _, r := range m.Registrations {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Id.Hex() < out[j].Id.Hex() })
	return out
}

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)
