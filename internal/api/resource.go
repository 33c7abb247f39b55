package api

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/pharmadesk/internal/backoffice"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// viewResponse is the derived state of one store.
type viewResponse[T any, F any] struct {
	Items    []T    `json:"items"`
	Visible  int    `json:"visible"`
	Total    int    `json:"total"`
	Filters  F      `json:"filters"`
	Loading  bool   `json:"loading"`
	Error    string `json:"error,omitempty"`
	Selected *T     `json:"selected,omitempty"`
}

type selectionRequest struct {
	ID string `json:"id"`
}

// resource serves the generic routes of one domain.
type resource[T types.Entity[T], F types.Filter[T]] struct {
	domain *backoffice.Domain[T, F]
}

// mount registers the generic domain routes on r.
func mount[T types.Entity[T], F types.Filter[T]](r chi.Router, d *backoffice.Domain[T, F]) {
	res := &resource[T, F]{domain: d}
	r.Get("/", res.view)
	r.Post("/", res.create)
	r.Post("/refresh", res.refresh)
	r.Put("/filters", res.setFilters)
	r.Get("/selection", res.selected)
	r.Put("/selection", res.selectEntity)
	r.Delete("/selection", res.clearSelection)
	r.Get("/{id}", res.get)
	r.Patch("/{id}", res.patch)
	r.Delete("/{id}", res.remove)
}

func (res *resource[T, F]) snapshot() viewResponse[T, F] {
	snap := res.domain.Store().Snapshot()
	out := viewResponse[T, F]{
		Items:    snap.View,
		Visible:  len(snap.View),
		Total:    len(snap.Entities),
		Filters:  snap.Filters,
		Loading:  snap.Loading,
		Selected: snap.Selected,
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	if snap.Err != nil {
		out.Error = snap.Err.Error()
	}
	return out
}

func (res *resource[T, F]) view(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, res.snapshot())
}

func (res *resource[T, F]) refresh(w http.ResponseWriter, r *http.Request) {
	if err := res.domain.Fetch(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, res.snapshot())
}

func (res *resource[T, F]) setFilters(w http.ResponseWriter, r *http.Request) {
	var f F
	if err := decodeJSON(r, &f); err != nil {
		respondError(w, http.StatusBadRequest, "invalid filters: "+err.Error())
		return
	}
	if err := f.Validate(); err != nil {
		respondErr(w, err)
		return
	}
	res.domain.Store().SetFilters(f)
	respondJSON(w, http.StatusOK, res.snapshot())
}

func (res *resource[T, F]) create(w http.ResponseWriter, r *http.Request) {
	var v T
	if err := decodeJSON(r, &v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	created, err := res.domain.Create(r.Context(), v)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (res *resource[T, F]) get(w http.ResponseWriter, r *http.Request) {
	v, ok := res.domain.Store().Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (res *resource[T, F]) patch(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := types.NewJSONPatch[T](raw)
	if err != nil {
		respondErr(w, err)
		return
	}
	saved, err := res.domain.Patch(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func (res *resource[T, F]) remove(w http.ResponseWriter, r *http.Request) {
	if err := res.domain.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (res *resource[T, F]) selected(w http.ResponseWriter, r *http.Request) {
	v, ok := res.domain.Store().Selected()
	if !ok {
		respondError(w, http.StatusNotFound, "nothing selected")
		return
	}
	respondJSON(w, http.StatusOK, v)
}

func (res *resource[T, F]) selectEntity(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	v, ok := res.domain.Store().Get(req.ID)
	if !ok {
		respondError(w, http.StatusNotFound, types.ErrNotFound.Error())
		return
	}
	res.domain.Store().SetSelected(v)
	respondJSON(w, http.StatusOK, v)
}

func (res *resource[T, F]) clearSelection(w http.ResponseWriter, r *http.Request) {
	res.domain.Store().ClearSelected()
	w.WriteHeader(http.StatusNoContent)
}
