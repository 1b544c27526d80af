/* test_helpers.go
 * Contains sample data constructors shared by store and api package tests
 */

package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateSampleContest creates a Contest for testing purposes
func CreateSampleContest(email string, ctype string, status string, participants int) Contest {
	return Contest{
		Id:           primitive.NewObjectID(),
		Email:        email,
		Title:        "Sample Contest",
		Type:         ctype,
		Status:       status,
		Description:  "A contest used in tests",
		Deadline:     "2025-12-31",
		Fee:          25,
		Prize:        "500 USD",
		Participants: participants,
	}
}

// CreateSampleUser creates a User for testing purposes
func CreateSampleUser(email string, role string) User {
	return User{
		Id:    primitive.NewObjectID(),
		Email: email,
		Name:  "Sample User",
		Image: "https://example.com/avatar.png",
		Role:  role,
	}
}

// CreateSampleRegistration creates a Registration for testing purposes
func CreateSampleRegistration(contestId string, email string, owner string) Registration {
	return Registration{
		Id:           primitive.NewObjectID(),
		ContestId:    contestId,
		Name:         "Sample User",
		Email:        email,
		Contest:      "Sample Contest",
		ContestOwner: owner,
		Deadline:     "2025-12-31",
	}
}
