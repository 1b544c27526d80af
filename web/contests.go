/* contests.go
 * Contains the HTTP handlers for the contest routes. Read results and write
 * acknowledgements are returned unshaped, as the store produced them.
 */

package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"contest-beaters/api/api"
	"contest-beaters/api/shared"
	"contest-beaters/api/store"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListContests returns every contest. Admin-only; guarded in the route table.
func (s *Server) ListContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.api.ListContests()
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contests)
}

// PopularContests returns the top contests by participant count
func (s *Server) PopularContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.api.PopularContests()
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contests)
}

// SearchContests looks up contests by exact canonicalised type
func (s *Server) SearchContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.api.SearchContests(chi.URLParam(r, "term"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contests)
}

// AcceptedContests returns accepted contests, optionally filtered by type
func (s *Server) AcceptedContests(w http.ResponseWriter, r *http.Request) {
	contests, err := s.api.AcceptedContests(chi.URLParam(r, "type"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contests)
}

// CreateContest inserts the contest document supplied in the body
func (s *Server) CreateContest(w http.ResponseWriter, r *http.Request) {
	var contest store.Contest
	if err := decodeBody(r, &contest); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.api.CreateContest(contest)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ContestsByCreator returns the contests the authenticated creator owns
func (s *Server) ContestsByCreator(w http.ResponseWriter, r *http.Request) {
	contests, err := s.api.ContestsByCreator(chi.URLParam(r, "email"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contests)
}

// GetContest returns a single contest, or null when the id matches nothing
func (s *Server) GetContest(w http.ResponseWriter, r *http.Request) {
	contest, err := s.api.GetContest(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contest)
}

// DeleteContest removes a contest and returns the delete acknowledgement
func (s *Server) DeleteContest(w http.ResponseWriter, r *http.Request) {
	res, err := s.api.DeleteContest(chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateContest applies the body's fields to a contest
func (s *Server) UpdateContest(w http.ResponseWriter, r *http.Request) {
	var fields bson.M
	if err := decodeBody(r, &fields); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.api.UpdateContest(chi.URLParam(r, "id"), fields)
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AcceptContest marks a contest accepted
func (s *Server) AcceptContest(w http.ResponseWriter, r *http.Request) {
	res, err := s.api.AcceptContest(chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeclareWinner runs the winner assignment workflow. A contest that already
// has its winner, or a registration the flag write could not reach, both
// report {"status":"failure"} in a 200 body; that soft-failure shape is the
// route's contract.
func (s *Server) DeclareWinner(w http.ResponseWriter, r *http.Request) {
	var req shared.WinnerRequest
	if err := decodeBody(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.api.DeclareWinner(req.ContestId, req.RegistrationId)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
	case errors.Is(err, api.ErrWinnerAlreadyDeclared), errors.Is(err, api.ErrWinnerNotRecorded):
		writeJSON(w, http.StatusOK, statusResponse{Status: "failure"})
	case errors.Is(err, mongo.ErrNoDocuments):
		writeMessage(w, http.StatusNotFound, "contest not found")
	default:
		s.storeError(w, err)
	}
}

// storeError maps store failures onto responses: malformed ids are the
// caller's fault, everything else is internal
func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrInvalidID) {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}
	log.Println("store operation failed:", err)
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
}

// decodeBody parses the request body into the given value
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
