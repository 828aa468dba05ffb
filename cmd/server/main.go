package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printforge/printcost/internal/analysis"
	"github.com/printforge/printcost/internal/catalog"
	"github.com/printforge/printcost/internal/config"
	"github.com/printforge/printcost/internal/currency"
	"github.com/printforge/printcost/internal/db"
	"github.com/printforge/printcost/internal/gemini"
	"github.com/printforge/printcost/internal/history"
	"github.com/printforge/printcost/internal/migrations"
	"github.com/printforge/printcost/internal/seed"
	"github.com/printforge/printcost/internal/watch"
)

type server struct {
	analyzer   *analysis.Analyzer
	history    history.Store
	currencies currency.Table
	catalog    *catalog.Catalog
}

func main() {
	cfg := config.Load()
	ctx := context.Background()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database, "migrations"); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}
	if _, err := seed.Run(database); err != nil {
		log.Fatalf("failed to seed material presets: %v", err)
	}

	hist, err := history.OpenBolt(cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("failed to open history store: %v", err)
	}
	defer hist.Close()

	currencies, err := currency.Load(cfg.CurrenciesPath)
	if err != nil {
		log.Fatalf("failed to load currency table: %v", err)
	}

	var scanner analysis.DeepScanner
	if cfg.GeminiAPIKey != "" {
		geminiScanner, err := gemini.New(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("failed to create gemini client: %v", err)
		}
		scanner = geminiScanner
	}

	srv := &server{
		analyzer:   analysis.New(scanner),
		history:    hist,
		currencies: currencies,
		catalog:    catalog.New(database),
	}

	if cfg.WatchDir != "" {
		watcher, err := watch.New(cfg.WatchDir, 0, srv.handleDroppedFile)
		if err != nil {
			log.Fatalf("failed to watch drop folder: %v", err)
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("drop folder watcher stopped: %v", err)
			}
		}()
		log.Printf("watching drop folder %s", cfg.WatchDir)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/analyze", s.handleAnalyze)
	r.Post("/api/calculate", s.handleCalculate)
	r.Get("/api/currencies", s.handleCurrencies)
	r.Post("/api/convert", s.handleConvert)
	r.Get("/api/history", s.handleHistoryList)
	r.Post("/api/history", s.handleHistoryCreate)
	r.Delete("/api/history/{id}", s.handleHistoryDelete)
	r.Get("/api/history/{id}/receipt", s.handleHistoryReceipt)
	r.Get("/api/materials", s.handleMaterialsList)
	r.Post("/api/materials", s.handleMaterialsCreate)
	r.Post("/api/materials/{id}", s.handleMaterialsUpdate)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
