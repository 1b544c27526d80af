/* users.go
 * Contains the HTTP handlers for token issuance, payments and the user routes
 */

package web

import (
	"log"
	"math"
	"net/http"

	"contest-beaters/api/store"

	"github.com/go-chi/chi/v5"
)

// IssueToken signs a one-hour identity token from the supplied claims. The
// claims are whatever the client asserts; the sign-in flow upstream is
// trusted to only request tokens for identities it has verified.
func (s *Server) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := s.tokens.Issue(req.Email, req.Role)
	if err != nil {
		log.Println("token issuance failed:", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// CreatePaymentIntent converts the dollar fee to cents, rounding to the
// nearest cent so float dollar amounts like 19.99 do not lose a cent to
// truncation, and asks the payment provider for an intent
func (s *Server) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	intent, err := s.payments.CreateIntent(int64(math.Round(req.Price*100)), "usd")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{ClientSecret: intent.ClientSecret})
}

// UsersExcluding returns every user except the caller. Admin-only; guarded
// in the route table.
func (s *Server) UsersExcluding(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.UsersExcluding(chi.URLParam(r, "email"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Creators lists all users holding the creator role
func (s *Server) Creators(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.Creators()
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// AddUser stores a user on first sign-in. Re-adding an existing email
// returns the stored record unchanged.
func (s *Server) AddUser(w http.ResponseWriter, r *http.Request) {
	var user store.User
	if err := decodeBody(r, &user); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, inserted, err := s.api.AddUser(user)
	if err != nil {
		s.storeError(w, err)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusOK, existing)
		return
	}
	writeJSON(w, http.StatusOK, inserted)
}

// UserRole returns the stored role for the email query parameter,
// defaulting to "user" for unknown emails
func (s *Server) UserRole(w http.ResponseWriter, r *http.Request) {
	role, err := s.api.RoleOf(r.URL.Query().Get("email"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roleResponse{Role: role})
}

// UpdateUserRole changes a user's role. Admin-only; guarded in the route
// table. The change reaches authorization once the user re-authenticates.
func (s *Server) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.api.SetUserRole(chi.URLParam(r, "id"), req.Role)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateUserProfile updates the caller's display name and image
func (s *Server) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.api.UpdateUserProfile(chi.URLParam(r, "email"), req.Name, req.Image)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
