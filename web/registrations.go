/* registrations.go
 * Contains the HTTP handlers for the registration routes
 */

package web

import (
	"net/http"

	"contest-beaters/api/shared"

	"github.com/go-chi/chi/v5"
)

// Register enters a user into a contest and bumps the participant counter.
// The response is the counter update acknowledgement, as the store shaped it.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req shared.RegistrationRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.api.RegisterForContest(req)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RegisteredContests returns the caller's registrations, sorted by deadline
// when ?sort=true
func (s *Server) RegisteredContests(w http.ResponseWriter, r *http.Request) {
	sorted := r.URL.Query().Get("sort") == "true"

	regs, err := s.api.RegistrationsByEntrant(chi.URLParam(r, "email"), sorted)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// ConfirmParticipation marks a registration as attended
func (s *Server) ConfirmParticipation(w http.ResponseWriter, r *http.Request) {
	res, err := s.api.ConfirmParticipation(chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// WinningContests returns the registrations the caller has won
func (s *Server) WinningContests(w http.ResponseWriter, r *http.Request) {
	regs, err := s.api.WinningRegistrations(chi.URLParam(r, "email"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// RegistrationsByOwner returns registrations for the contests a creator runs
func (s *Server) RegistrationsByOwner(w http.ResponseWriter, r *http.Request) {
	regs, err := s.api.RegistrationsByOwner(chi.URLParam(r, "email"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, regs)
}
