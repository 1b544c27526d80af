/* store_test.go
 * Contains unit tests for store.go plus the shared mock-client constructor
 */

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

// newMockedStore builds a Store whose collection handles all point at the
// mtest mock collection. Responses are consumed in order, so which logical
// collection a method targets does not matter to the mock.
func newMockedStore(mt *mtest.T) *Store {
	s := &Store{
		Client:   mt.Client,
		Database: mt.DB,
	}
	s.Collections.Contests = mt.Coll
	s.Collections.Users = mt.Coll
	s.Collections.Registrations = mt.Coll
	return s
}

func TestNewStore_EmptyDBName(t *testing.T) {
	s, err := NewStore("", "mongodb://localhost:27017")
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestObjectID_Valid(t *testing.T) {
	oid, err := objectID("5f2a6c1e8b1e4a0001a1b2c3")
	assert.NoError(t, err)
	assert.Equal(t, "5f2a6c1e8b1e4a0001a1b2c3", oid.Hex())
}

func TestObjectID_Malformed(t *testing.T) {
	_, err := objectID("not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestObjectID_Empty(t *testing.T) {
	_, err := objectID("")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestValidateID_Valid(t *testing.T) {
	assert.NoError(t, ValidateID("5f2a6c1e8b1e4a0001a1b2c3"))
}

func TestValidateID_Malformed(t *testing.T) {
	assert.ErrorIs(t, ValidateID("garbage-not-hex"), ErrInvalidID)
}
