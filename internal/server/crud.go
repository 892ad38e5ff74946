package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quantpane/quantpane/pkg/errors"
	"github.com/quantpane/quantpane/pkg/store"
)

// document is what mountCRUD needs from an entity pointer.
type document interface {
	GetID() string
	SetID(id string)
}

// mountCRUD mounts the uniform entity routes on r:
//
//	GET    {path}        list
//	POST   {path}        create
//	GET    {path}/{id}   fetch
//	PUT    {path}/{id}   replace
//	DELETE {path}/{id}   remove
func mountCRUD[T any, PT interface {
	document
	*T
}](r chi.Router, path string, coll store.Collection[T]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			items, err := coll.List(req.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, items)
		})

		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var item T
			if err := json.NewDecoder(req.Body).Decode(&item); err != nil {
				writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
				return
			}
			if err := coll.Put(req.Context(), &item); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, item)
		})

		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			item, err := coll.Get(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		})

		r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
			var item T
			if err := json.NewDecoder(req.Body).Decode(&item); err != nil {
				writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
				return
			}
			// The URL is authoritative for the ID.
			PT(&item).SetID(chi.URLParam(req, "id"))
			if err := coll.Put(req.Context(), &item); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, item)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
			if err := coll.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}
