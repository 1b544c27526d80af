/* registrations_test.go
 * Contains unit tests for registrations.go
 */

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func registrationDoc(id primitive.ObjectID, email string, winner bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "contestId", Value: primitive.NewObjectID().Hex()},
		{Key: "name", Value: "Some User"},
		{Key: "email", Value: email},
		{Key: "contest", Value: "Logo Design Battle"},
		{Key: "contestOwner", Value: "creator@example.com"},
		{Key: "deadline", Value: "2025-12-31"},
		{Key: "participated", Value: false},
		{Key: "winner", Value: winner},
	}
}

func TestInsertRegistration_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the insert acknowledgement", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		reg := CreateSampleRegistration(primitive.NewObjectID().Hex(), "alice@example.com", "creator@example.com")
		res, err := store.InsertRegistration(reg)
		require.NoError(t, err)
		assert.NotNil(t, res.InsertedID)
	})
}

func TestInsertRegistration_WriteError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("wraps the write error", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		reg := CreateSampleRegistration(primitive.NewObjectID().Hex(), "alice@example.com", "creator@example.com")
		res, err := store.InsertRegistration(reg)
		assert.Error(t, err)
		assert.Nil(t, res)
		assert.Contains(t, err.Error(), "failed to insert registration")
	})
}

func TestListRegistrationsByEmail_DecodesBatch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns the user's registrations", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contestBeatersDB.registrations", mtest.FirstBatch,
			registrationDoc(primitive.NewObjectID(), "alice@example.com", false),
			registrationDoc(primitive.NewObjectID(), "alice@example.com", true),
		))

		regs, err := store.ListRegistrationsByEmail("alice@example.com")
		require.NoError(t, err)
		assert.Len(t, regs, 2)
	})
}

func TestListWinningRegistrations_DecodesBatch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns only what the winner filter matched", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "contestBeatersDB.registrations", mtest.FirstBatch,
			registrationDoc(primitive.NewObjectID(), "alice@example.com", true),
		))

		regs, err := store.ListWinningRegistrations("alice@example.com")
		require.NoError(t, err)
		require.Len(t, regs, 1)
		assert.True(t, regs[0].Winner)
	})
}

func TestMarkParticipated_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports one modified document", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		res, err := store.MarkParticipated(primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.ModifiedCount)
	})
}

func TestMarkParticipated_InvalidId(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rejects a malformed id", func(mt *mtest.T) {
		store := newMockedStore(mt)

		res, err := store.MarkParticipated("xx")
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.Nil(t, res)
	})
}

func TestMarkRegistrationWinner_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports one modified document", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		res, err := store.MarkRegistrationWinner(primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.EqualValues(t, 1, res.ModifiedCount)
	})
}

func TestMarkRegistrationWinner_NoMatch(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports zero modifications when no registration has that id", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})

		res, err := store.MarkRegistrationWinner(primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.EqualValues(t, 0, res.ModifiedCount)
	})
}
