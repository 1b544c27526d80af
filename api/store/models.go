/* models.go
 * This file contain the structs that relate to DB objects
 */

package store

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contest is a document in the contests collection. Winner holds the hex id
// of the winning registration and is set at most once; once non-empty it is
// never overwritten.
type Contest struct {
	Id           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"` // creator email
	Title        string             `bson:"title,omitempty" json:"title,omitempty"`
	Type         string             `bson:"type,omitempty" json:"type,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"` // "pending" or "accepted"
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Deadline     string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Fee          float64            `bson:"fee,omitempty" json:"fee,omitempty"`
	Prize        string             `bson:"prize,omitempty" json:"prize,omitempty"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Participants int                `bson:"participants" json:"participants"`
	Winner       string             `bson:"winner,omitempty" json:"winner,omitempty"`
}

// User is a document in the users collection, keyed by unique email
type User struct {
	Id    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Image string             `bson:"image,omitempty" json:"image,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

// Registration is a document in the registrations collection. ContestOwner
// and Deadline are denormalized from the contest at registration time.
type Registration struct {
	Id           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ContestId    string             `bson:"contestId,omitempty" json:"contestId,omitempty"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"` // registrant email
	Contest      string             `bson:"contest,omitempty" json:"contest,omitempty"`
	ContestOwner string             `bson:"contestOwner,omitempty" json:"contestOwner,omitempty"`
	Deadline     string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Participated bool               `bson:"participated" json:"participated"`
	Winner       bool               `bson:"winner" json:"winner"`
}
