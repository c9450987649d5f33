package adapthttp

import (
	"net/http"

	"weighttracker/internal/domain"
)

type userJSON struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

var errUserNotFound = &domain.NotFoundError{Resource: "user"}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	u, ok := s.lookupUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, userJSON{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: domain.FormatTime(u.CreatedAt),
		UpdatedAt: domain.FormatTime(u.UpdatedAt),
	})
}

func (s *Server) handleUserWeightRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	u, ok := s.lookupUser(w, r)
	if !ok {
		return
	}
	records, err := s.weight.ListByUser(r.Context(), u.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": toWeightRecordsJSON(records)})
}

// lookupUser resolves {id} and writes the error response itself when the
// user cannot be returned.
func (s *Server) lookupUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	u, err := s.users.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	if u == nil {
		writeServiceError(w, errUserNotFound)
		return nil, false
	}
	return u, true
}
