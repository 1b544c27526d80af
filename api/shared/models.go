/* models.go
 * This file contain the structs and constants that are shared between sub packages
 */

package shared

// Role values stored on user records and embedded in issued tokens
const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// Contest status values
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// Principal is the authenticated identity attached to a request after the
// token has been verified. It lives only for the duration of the request.
type Principal struct {
	Email string
	Role  string
}

// RegistrationRequest is the payload a user submits to enter a contest
type RegistrationRequest struct {
	ContestId    string `json:"contestId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Contest      string `json:"contest"`
	ContestOwner string `json:"contestOwner"`
	Deadline     string `json:"deadline"`
}

// WinnerRequest names the contest and the registration to be declared winner
type WinnerRequest struct {
	ContestId      string `json:"contestId"`
	RegistrationId string `json:"registrationId"`
}
