/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package twin is an in-memory stand-in for the restful-api.dev objects
// resource. It reproduces the status codes and body shapes the public
// service returns so suites can run without network access.
package twin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
)

const (
	// timeFormat matches the timestamps the public service emits.
	timeFormat = "2006-01-02T15:04:05.000-07:00"

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	badRequestMessage = "400 Bad Request. If you are trying to create or update the data, potential issue is that you are sending incorrect body json or it is missing at all."
)

// Handler serves the objects resource.
type Handler struct {
	store *Store
	log   logr.Logger
}

// NewHandler returns a handler backed by store.
func NewHandler(store *Store, log logr.Logger) *Handler {
	return &Handler{
		store: store,
		log:   log,
	}
}

// NewRouter returns a router with the common middleware and every route
// mounted.
func NewRouter(store *Store, log logr.Logger) *chi.Mux {
	h := NewHandler(store, log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(h.requestLog)
	r.Use(chimw.Recoverer)

	r.NotFound(h.notFound)
	r.MethodNotAllowed(h.methodNotAllowed)

	h.Routes(r)

	return r
}

// Routes mounts the objects routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/objects", func(r chi.Router) {
		r.Get("/", h.ListObjects)
		r.Post("/", h.CreateObject)
		r.Get("/{id}", h.GetObject)
		r.Put("/{id}", h.UpdateObject)
		r.Patch("/{id}", h.PatchObject)
		r.Delete("/{id}", h.DeleteObject)
	})
}

func (h *Handler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.log.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "bytes", ww.BytesWritten(), "duration", time.Since(start), "requestID", chimw.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

// notFound mirrors the framework error the public service returns for
// routes it does not serve, such as /items.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"timestamp": time.Now().UTC().Format(timeFormat),
		"status":    http.StatusNotFound,
		"error":     "Not Found",
		"path":      r.URL.Path,
	})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
		"timestamp": time.Now().UTC().Format(timeFormat),
		"status":    http.StatusMethodNotAllowed,
		"error":     "Method Not Allowed",
		"path":      r.URL.Path,
	})
}

func render(o Object) map[string]interface{} {
	out := map[string]interface{}{
		"id":   o.ID,
		"name": o.Name,
		"data": o.Data,
	}

	if o.CreatedAt != nil {
		out["createdAt"] = o.CreatedAt.Format(timeFormat)
	}

	if o.UpdatedAt != nil {
		out["updatedAt"] = o.UpdatedAt.Format(timeFormat)
	}

	return out
}

// readObject decodes a JSON object body. Nothing else is accepted.
func readObject(r *http.Request) (map[string]interface{}, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("decoding body: %w", err)
	}

	if body == nil {
		return nil, errors.New("body must be a JSON object")
	}

	return body, nil
}

type fields struct {
	name    *string
	data    map[string]interface{}
	hasData bool
}

func parseFields(body map[string]interface{}) (*fields, error) {
	f := &fields{}

	if v, ok := body["name"]; ok && v != nil {
		name, ok := v.(string)
		if !ok {
			return nil, errors.New("name must be a string")
		}

		f.name = &name
	}

	if v, ok := body["data"]; ok {
		f.hasData = true

		if v != nil {
			data, ok := v.(map[string]interface{})
			if !ok {
				return nil, errors.New("data must be an object")
			}

			f.data = data
		}
	}

	return f, nil
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error, id, verb string) {
	switch {
	case errors.Is(err, ErrNotFound):
		if verb == "" {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Object with id=%s was not found.", id))
			return
		}

		writeError(w, http.StatusNotFound, fmt.Sprintf("The Object with id=%s doesn't exist. Please provide an object id which exists or generate a new Object using POST request and capture the id of it to use it as part of %s request after that.", id, verb))
	case errors.Is(err, ErrReserved):
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("%s is a reserved id and the data object of it cannot be overridden. You can create your own new object via POST request and try to send a %s request to it.", id, verb))
	default:
		h.log.Error(err, "unhandled store error", "id", id)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

// ListObjects handles GET /objects, optionally filtered by repeated id
// query parameters.
func (h *Handler) ListObjects(w http.ResponseWriter, r *http.Request) {
	objects := h.store.List(r.URL.Query()["id"])

	out := make([]map[string]interface{}, len(objects))

	for i := range objects {
		out[i] = render(objects[i])
	}

	writeJSON(w, http.StatusOK, out)
}

// GetObject handles GET /objects/{id}.
func (h *Handler) GetObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, err := h.store.Get(id)
	if err != nil {
		h.writeStoreError(w, err, id, "")
		return
	}

	// Reads never carry timestamps.
	o.CreatedAt, o.UpdatedAt = nil, nil

	writeJSON(w, http.StatusOK, render(o))
}

// CreateObject handles POST /objects.
func (h *Handler) CreateObject(w http.ResponseWriter, r *http.Request) {
	body, err := readObject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	f, err := parseFields(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	name := ""
	if f.name != nil {
		name = *f.name
	}

	o := h.store.Create(name, f.data)

	h.log.V(1).Info("object created", "id", o.ID)

	writeJSON(w, http.StatusOK, render(o))
}

// UpdateObject handles PUT /objects/{id}, replacing name and data.
func (h *Handler) UpdateObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := readObject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	f, err := parseFields(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	name := ""
	if f.name != nil {
		name = *f.name
	}

	o, err := h.store.Replace(id, name, f.data)
	if err != nil {
		h.writeStoreError(w, err, id, "PUT")
		return
	}

	o.CreatedAt = nil

	writeJSON(w, http.StatusOK, render(o))
}

// PatchObject handles PATCH /objects/{id}, merging the given fields.
func (h *Handler) PatchObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	body, err := readObject(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	f, err := parseFields(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, badRequestMessage)
		return
	}

	data := f.data
	if f.hasData && data == nil {
		data = map[string]interface{}{}
	}

	o, err := h.store.Patch(id, f.name, data)
	if err != nil {
		h.writeStoreError(w, err, id, "PATCH")
		return
	}

	o.CreatedAt = nil

	writeJSON(w, http.StatusOK, render(o))
}

// DeleteObject handles DELETE /objects/{id}.
func (h *Handler) DeleteObject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(id); err != nil {
		h.writeStoreError(w, err, id, "DELETE")
		return
	}

	h.log.V(1).Info("object deleted", "id", id)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Object with id = %s has been deleted.", id),
	})
}
