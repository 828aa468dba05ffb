package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printforge/printcost/internal/history"
	"github.com/printforge/printcost/internal/pricing"
	"github.com/printforge/printcost/internal/receipt"
)

func (s *server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleHistoryCreate saves a calculation. The breakdown is recomputed
// server-side from the submitted inputs so stored costs can never drift
// from stored data.
func (s *server) handleHistoryCreate(w http.ResponseWriter, r *http.Request) {
	var in pricing.CostInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid cost input")
		return
	}

	if strings.TrimSpace(in.PrintName) == "" {
		writeError(w, http.StatusBadRequest, "printName is required")
		return
	}
	if err := validateCostInput(in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cur, err := s.currencies.Get(in.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry := history.Entry{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Data:      in,
		Costs:     pricing.Calculate(in),
		Currency:  cur,
	}
	if err := s.history.Append(entry); err != nil {
		writeError(w, http.StatusInternalServerError, "could not save entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.history.Remove(id); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no such entry")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not delete entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleHistoryReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := s.history.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not load history")
		return
	}
	entry, ok := history.Find(entries, id)
	if !ok {
		writeError(w, http.StatusNotFound, "no such entry")
		return
	}

	pdf, err := receipt.Render(entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not render receipt")
		return
	}

	name := strings.ReplaceAll(entry.Data.PrintName, " ", "_")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="3D_Print_Receipt_%s.pdf"`, name))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
