/* models.go
 * Contains the web server configuration, the Server struct and the small
 * request/response shapes the handlers use
 */

package web

import (
	"encoding/json"
	"log"
	"net/http"

	"contest-beaters/api/api"
	"contest-beaters/api/auth"
	"contest-beaters/payments"
)

// Config holds the configuration for the web server
type Config struct {
	Addr     string
	API      *api.API
	Tokens   *auth.TokenService
	Payments payments.Provider
}

// Server is the HTTP server that handles the contest platform routes
type Server struct {
	api      *api.API
	tokens   *auth.TokenService
	payments payments.Provider
	limiter  *rateLimiter
}

// tokenRequest is the claims payload for POST /jwt
type tokenRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// tokenResponse carries the issued token back to the client
type tokenResponse struct {
	Token string `json:"token"`
}

// statusResponse is the soft-failure convention for the winner route: the
// outcome rides in a success-shaped body, not the HTTP status
type statusResponse struct {
	Status string `json:"status"`
}

// messageResponse is the error body shape the original API used
type messageResponse struct {
	Message string `json:"message"`
}

// paymentRequest carries the contest fee in dollars
type paymentRequest struct {
	Price float64 `json:"price"`
}

// paymentResponse hands the client the processor secret
type paymentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// roleResponse is the body for GET /user-role
type roleResponse struct {
	Role string `json:"role"`
}

// profileRequest is the body for PATCH /user/update/{email}
type profileRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

// roleRequest is the body for PATCH /user/update-role/{id}
type roleRequest struct {
	Role string `json:"role"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println("failed to encode JSON response:", err)
	}
}

// writeMessage writes a JSON error body in the {"message": ...} shape
func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, messageResponse{Message: message})
}
