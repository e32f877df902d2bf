package httpapi

import (
	"net/http"
	"strings"
	"time"

	"reserva.org/internal/audit"
	"reserva.org/internal/auth"
)

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Demo issuance without a registered account; used by smoke tooling.
	User  string   `json:"user,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

const tokenTTL = 15 * time.Minute

func (a *API) handleAuthToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req tokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(req.Email) != "" {
		a.issueForAccount(w, r, req.Email, req.Password)
		return
	}
	a.issueDemo(w, r, req.User, req.Roles)
}

func (a *API) issueForAccount(w http.ResponseWriter, r *http.Request, email, password string) {
	account, err := a.users.Authenticate(r.Context(), email, password)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(account.ID, account.Email, account.Actor().RoleStrings(), tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	expiresAt := time.Now().UTC().Add(tokenTTL)
	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"user_id":    account.ID,
		"email":      account.Email,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (a *API) issueDemo(w http.ResponseWriter, r *http.Request, userID string, roleLabels []string) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "email or user is required")
		return
	}
	roles := auth.ParseRoles(roleLabels)
	if len(roles) == 0 {
		writeError(w, r, http.StatusBadRequest, "roles are required")
		return
	}
	labels := make([]string, 0, len(roles))
	for _, role := range roles {
		labels = append(labels, string(role))
	}

	token, err := auth.GenerateToken(userID, "", labels, tokenTTL)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "token generation failed")
		return
	}

	expiresAt := time.Now().UTC().Add(tokenTTL)
	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"user_id":    userID,
		"roles":      labels,
		"expires_at": expiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (a *API) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		writeError(w, r, http.StatusBadRequest, "password is required")
		return
	}

	account, err := a.users.Register(r.Context(), req.Email, req.Name, req.Password, nil)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.user.registered", map[string]any{
		"user_id": account.ID,
		"email":   account.Email,
	})

	writeJSON(w, http.StatusCreated, account)
}
