package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/printforge/printcost/internal/catalog"
)

func (s *server) handleMaterialsList(w http.ResponseWriter, r *http.Request) {
	materials, err := s.catalog.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load materials")
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (s *server) handleMaterialsCreate(w http.ResponseWriter, r *http.Request) {
	var m catalog.Material
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid material")
		return
	}

	created, err := s.catalog.Create(m)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *server) handleMaterialsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid material id")
		return
	}

	var m catalog.Material
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid material")
		return
	}
	m.ID = id

	if err := s.catalog.Update(m); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no such material")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}
