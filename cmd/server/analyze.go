package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/printforge/printcost/internal/analysis"
	"github.com/printforge/printcost/internal/gcode"
)

// maxUploadBytes caps an uploaded G-code file. Large prints easily reach
// tens of megabytes of moves; the metadata we need sits in the header.
const maxUploadBytes = 64 << 20

// deepScanTimeout bounds the remote extraction call. The analysis itself
// imposes no timeout, so the server does.
const deepScanTimeout = 60 * time.Second

type timeParts struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

type analyzeResponse struct {
	Status          analysis.Status  `json:"status"`
	Method          analysis.Method  `json:"method"`
	JobName         string           `json:"jobName"`
	Extraction      gcode.Extraction `json:"extraction"`
	FilamentWeightG float64          `json:"filamentWeightG"`
	PrintTime       timeParts        `json:"printTime"`
}

// handleAnalyze accepts a multipart G-code upload and runs it through the
// extraction pipeline. Optional form fields:
//
//   - current_weight: the weight currently entered in the form, kept when
//     nothing usable is extracted (defaults to 50g like a fresh form)
//   - diameter, density: filament properties for the length fallback
//   - material_id: a catalog preset supplying diameter and density
func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	currentWeight := formFloat(r, "current_weight", 50)
	diameter := formFloat(r, "diameter", gcode.DefaultDiameterMm)
	density := formFloat(r, "density", gcode.DefaultDensityGPerCm3)

	if idRaw := r.FormValue("material_id"); idRaw != "" && s.catalog != nil {
		id, err := strconv.ParseInt(idRaw, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid material id")
			return
		}
		material, err := s.catalog.Get(id)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unknown material id")
			return
		}
		diameter = material.DiameterMm
		density = material.DensityGCm3
	}

	ctx, cancel := context.WithTimeout(r.Context(), deepScanTimeout)
	defer cancel()

	result, err := s.analyzer.Analyze(ctx, header.Filename, content)
	if err != nil {
		status := analyzeErrorStatus(err)
		log.Printf("analysis of %q failed: %v", header.Filename, err)
		writeError(w, status, err.Error())
		return
	}

	hours, minutes, seconds := gcode.SplitTime(result.Extraction)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Status:          s.analyzer.Status(),
		Method:          result.Method,
		JobName:         result.JobName,
		Extraction:      result.Extraction,
		FilamentWeightG: gcode.ResolveWeight(result.Extraction, currentWeight, diameter, density),
		PrintTime:       timeParts{Hours: hours, Minutes: minutes, Seconds: seconds},
	})
}

func analyzeErrorStatus(err error) int {
	switch {
	case errors.Is(err, analysis.ErrUnsupportedFile):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrNoExtractableData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, analysis.ErrDeepScanFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// formFloat reads an optional non-negative float form value.
func formFloat(r *http.Request, field string, fallback float64) float64 {
	raw := r.FormValue(field)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
