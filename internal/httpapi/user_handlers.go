package httpapi

import (
	"net/http"
	"time"

	"reserva.org/internal/user"
)

type listUsersResponse struct {
	Items []*user.User `json:"items"`
	AsOf  time.Time    `json:"as_of"`
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	items, err := a.users.List(r.Context(), actorFrom(r))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listUsersResponse{Items: items, AsOf: time.Now().UTC()})
}
