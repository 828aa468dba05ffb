package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/printforge/printcost/internal/analysis"
	"github.com/printforge/printcost/internal/currency"
	"github.com/printforge/printcost/internal/gcode"
	"github.com/printforge/printcost/internal/history"
)

func newTestServer(scanner analysis.DeepScanner) *server {
	return &server{
		analyzer:   analysis.New(scanner),
		history:    history.NewMemory(),
		currencies: currency.Defaults(),
	}
}

func uploadRequest(t *testing.T, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write form field %s: %v", key, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeAnalyzeResponse(t *testing.T, rec *httptest.ResponseRecorder) analyzeResponse {
	t.Helper()
	var resp analyzeResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode analyze response: %v", err)
	}
	return resp
}

func TestHandleAnalyzeExtractsLocally(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	req := uploadRequest(t, "benchy.gcode", ";TIME:5400\n; filament used: 20g\n", nil)
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeAnalyzeResponse(t, rec)
	if resp.JobName != "benchy" {
		t.Fatalf("expected job name benchy, got %q", resp.JobName)
	}
	if resp.Method != analysis.MethodLocal {
		t.Fatalf("expected local method, got %q", resp.Method)
	}
	if resp.FilamentWeightG != 20 {
		t.Fatalf("expected 20g, got %v", resp.FilamentWeightG)
	}
	if resp.PrintTime.Hours != 1 || resp.PrintTime.Minutes != 30 || resp.PrintTime.Seconds != 0 {
		t.Fatalf("expected 1h30m0s, got %+v", resp.PrintTime)
	}
}

func TestHandleAnalyzeRejectsWrongExtension(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	req := uploadRequest(t, "model.stl", "solid benchy\n", nil)
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAnalyzeRejectsMissingFile(t *testing.T) {
	srv := newTestServer(nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("current_weight", "30"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAnalyzeKeepsCurrentWeightWhenNothingUsable(t *testing.T) {
	scanner := &fixedScanner{result: gcode.Extraction{PrintTimeSeconds: intPtr(3600)}}
	srv := newTestServer(scanner)

	rec := httptest.NewRecorder()
	req := uploadRequest(t, "vase.gcode", "; sliced today\n", map[string]string{"current_weight": "42"})
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeAnalyzeResponse(t, rec)
	if resp.Method != analysis.MethodAI {
		t.Fatalf("expected ai method, got %q", resp.Method)
	}
	if resp.FilamentWeightG != 42 {
		t.Fatalf("expected the form weight 42 to survive, got %v", resp.FilamentWeightG)
	}
}

func TestHandleAnalyzeNoExtractableData(t *testing.T) {
	srv := newTestServer(nil)

	rec := httptest.NewRecorder()
	req := uploadRequest(t, "empty.gcode", "G28\nG1 X10\n", nil)
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAnalyzeDeepScanFailure(t *testing.T) {
	scanner := &fixedScanner{err: context.DeadlineExceeded}
	srv := newTestServer(scanner)

	rec := httptest.NewRecorder()
	req := uploadRequest(t, "tall.gcode", ";TIME:100\n", nil)
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", rec.Code, rec.Body.String())
	}
}

type fixedScanner struct {
	result gcode.Extraction
	err    error
}

func (s *fixedScanner) Extract(ctx context.Context, header string) (gcode.Extraction, error) {
	return s.result, s.err
}

func intPtr(v int) *int { return &v }
