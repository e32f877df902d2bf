package httpapi

import (
	"net/http"
	"strings"
	"time"

	"reserva.org/internal/audit"
	"reserva.org/internal/task"
)

type createTaskRequest struct {
	Title      string `json:"title"`
	CategoryID string `json:"category_id"`
}

type updateTaskRequest struct {
	Title      *string `json:"title"`
	CategoryID *string `json:"category_id"`
	Available  *bool   `json:"available"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type updateCategoryRequest struct {
	Name *string `json:"name"`
}

type listTasksResponse struct {
	Items []*task.Task `json:"items"`
	AsOf  time.Time    `json:"as_of"`
}

type listCategoriesResponse struct {
	Items []*task.Category `json:"items"`
	AsOf  time.Time        `json:"as_of"`
}

func (a *API) handleTasksCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createTask(w, r)
	case http.MethodGet:
		a.listTasks(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost, http.MethodGet)
	}
}

func (a *API) handleTaskResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/tasks/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getTask(w, r, id)
	case http.MethodPut:
		a.updateTask(w, r, id)
	case http.MethodDelete:
		a.deleteTask(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := a.tasks.CreateTask(r.Context(), actorFrom(r), req.Title, req.CategoryID)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "task.create", map[string]any{"task_id": created.ID})
	w.Header().Set("Location", "/v1/tasks/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) listTasks(w http.ResponseWriter, r *http.Request) {
	items, err := a.tasks.ListTasks(r.Context(), actorFrom(r))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listTasksResponse{Items: items, AsOf: time.Now().UTC()})
}

func (a *API) getTask(w http.ResponseWriter, r *http.Request, id string) {
	t, err := a.tasks.GetTask(r.Context(), actorFrom(r), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *API) updateTask(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := a.tasks.UpdateTask(r.Context(), actorFrom(r), id, task.TaskUpdate{
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Available:  req.Available,
	})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "task.update", map[string]any{"task_id": id})
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteTask(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.tasks.DeleteTask(r.Context(), actorFrom(r), id); err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "task.delete", map[string]any{"task_id": id})
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleCategoriesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		a.createCategory(w, r)
	case http.MethodGet:
		a.listCategories(w, r)
	default:
		methodNotAllowed(w, r, http.MethodPost, http.MethodGet)
	}
}

func (a *API) handleCategoryResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/categories/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getCategory(w, r, id)
	case http.MethodPut:
		a.updateCategory(w, r, id)
	case http.MethodDelete:
		a.deleteCategory(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := a.tasks.CreateCategory(r.Context(), actorFrom(r), req.Name)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "category.create", map[string]any{"category_id": created.ID})
	w.Header().Set("Location", "/v1/categories/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	items, err := a.tasks.ListCategories(r.Context(), actorFrom(r))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listCategoriesResponse{Items: items, AsOf: time.Now().UTC()})
}

func (a *API) getCategory(w http.ResponseWriter, r *http.Request, id string) {
	c, err := a.tasks.GetCategory(r.Context(), actorFrom(r), id)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) updateCategory(w http.ResponseWriter, r *http.Request, id string) {
	var req updateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := a.tasks.UpdateCategory(r.Context(), actorFrom(r), id, task.CategoryUpdate{Name: req.Name})
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "category.update", map[string]any{"category_id": id})
	writeJSON(w, http.StatusOK, updated)
}

func (a *API) deleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := a.tasks.DeleteCategory(r.Context(), actorFrom(r), id); err != nil {
		handleDomainError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "category.delete", map[string]any{"category_id": id})
	w.WriteHeader(http.StatusNoContent)
}
