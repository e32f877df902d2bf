package httpapi

import (
	"net/http"
	"strings"
	"time"

	"reserva.org/internal/audit"
	"reserva.org/internal/auth"
	"reserva.org/internal/reservation"
	"reserva.org/internal/stream"
)

type createReservationRequest struct {
	TaskID  string `json:"task_id"`
	Comment string `json:"comment"`
}

type changeStatusRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment"`
}

type listReservationsResponse struct {
	Items []*reservation.Reservation `json:"items"`
	AsOf  time.Time                  `json:"as_of"`
}

func (a *API) handleReservationsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createReservation(w, r)
	case http.MethodGet:
		a.listReservations(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost, http.MethodGet)
	}
}

func (a *API) handleReservationResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/reservations/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	id, action, hasAction := strings.Cut(path, "/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "reservation not found")
		return
	}

	if !hasAction {
		switch r.Method {
		case http.MethodGet:
			a.getReservation(w, r, id)
		default:
			methodNotAllowed(w, r, http.MethodGet)
		}
		return
	}

	switch action {
	case "approve", "reject", "return":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		a.transitionReservation(w, r, id, action)
	case "status":
		if r.Method != http.MethodPut {
			methodNotAllowed(w, r, http.MethodPut)
			return
		}
		a.changeReservationStatus(w, r, id)
	default:
		writeError(w, r, http.StatusNotFound, "resource not found")
	}
}

func (a *API) createReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	actor := actorFrom(r)
	res, err := a.reservations.Create(r.Context(), actor, req.TaskID, req.Comment)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.publishReservationEvent(actor, res, "")
	_ = audit.LogEvent(r.Context(), "reservation.create", map[string]any{
		"reservation_id": res.ID,
		"task_id":        res.TaskID,
	})

	w.Header().Set("Location", "/v1/reservations/"+res.ID)
	writeJSON(w, http.StatusCreated, res)
}

func (a *API) listReservations(w http.ResponseWriter, r *http.Request) {
	items, err := a.reservations.List(r.Context(), actorFrom(r))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listReservationsResponse{
		Items: items,
		AsOf:  time.Now().UTC(),
	})
}

func (a *API) getReservation(w http.ResponseWriter, r *http.Request, id string) {
	res, err := a.reservations.Get(r.Context(), actorFrom(r), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *API) transitionReservation(w http.ResponseWriter, r *http.Request, id, action string) {
	actor := actorFrom(r)
	previous := a.previousStatus(r, actor, id)

	var (
		res *reservation.Reservation
		err error
	)
	switch action {
	case "approve":
		res, err = a.reservations.Approve(r.Context(), actor, id)
	case "reject":
		res, err = a.reservations.Reject(r.Context(), actor, id)
	case "return":
		res, err = a.reservations.Return(r.Context(), actor, id)
	}
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.publishReservationEvent(actor, res, previous)
	_ = audit.LogEvent(r.Context(), "reservation."+action, map[string]any{
		"reservation_id": res.ID,
		"task_id":        res.TaskID,
		"previous":       previous,
		"status":         string(res.Status),
	})

	writeJSON(w, http.StatusOK, res)
}

func (a *API) changeReservationStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req changeStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	actor := actorFrom(r)
	previous := a.previousStatus(r, actor, id)

	res, err := a.reservations.ChangeStatus(r.Context(), actor, id, req.Status, req.Comment)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	a.publishReservationEvent(actor, res, previous)
	_ = audit.LogEvent(r.Context(), "reservation.change_status", map[string]any{
		"reservation_id": res.ID,
		"task_id":        res.TaskID,
		"previous":       previous,
		"status":         string(res.Status),
	})

	writeJSON(w, http.StatusOK, res)
}

// previousStatus reads the current status for event payloads. Best effort:
// the transition itself re-reads under its own rules.
func (a *API) previousStatus(r *http.Request, actor *auth.Actor, id string) string {
	res, err := a.reservations.Get(r.Context(), actor, id)
	if err != nil {
		return ""
	}
	return string(res.Status)
}

func (a *API) publishReservationEvent(actor *auth.Actor, res *reservation.Reservation, previous string) {
	if a.stream == nil {
		return
	}
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	a.stream.Publish(stream.ReservationEvent{
		ReservationID: res.ID,
		TaskID:        res.TaskID,
		ActorID:       actorID,
		Previous:      previous,
		Next:          string(res.Status),
		Comment:       res.Comment,
		Timestamp:     time.Now().UTC(),
	})
}
