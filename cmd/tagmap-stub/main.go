package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// mapping is the stub's canned tag mapping table. Override it with a JSON
// file via -mappings for local end-to-end runs.
var mapping = map[string]string{
	"VIP":         "Major Donor",
	"Big Donor":   "Major Donor",
	"Volunteer":   "Active Volunteer",
	"Newsletter":  "Newsletter Subscriber",
	"Event Guest": "Event Attendee",
	"Lapsed":      "Lapsed Donor",
}

func main() {
	log.Println("WARNING: this is a STUB tag mapping API for local testing only.")

	addr := flag.String("addr", ":8090", "listen address")
	mappingsPath := flag.String("mappings", "", "optional JSON file of original->mapped pairs")
	flag.Parse()

	if *mappingsPath != "" {
		data, err := os.ReadFile(*mappingsPath)
		if err != nil {
			log.Fatalf("read mappings file: %v", err)
		}
		if err := json.Unmarshal(data, &mapping); err != nil {
			log.Fatalf("parse mappings file: %v", err)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"tagmap-stub"}`))
	})

	r.Get("/v1/tag-mappings", func(w http.ResponseWriter, _ *http.Request) {
		type entry struct {
			Original string `json:"original"`
			Mapped   string `json:"mapped"`
		}
		payload := struct {
			Mappings []entry `json:"mappings"`
		}{}
		for original, mapped := range mapping {
			payload.Mappings = append(payload.Mappings, entry{Original: original, Mapped: mapped})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	})

	log.Printf("tagmap-stub listening on %s (%d mappings)", *addr, len(mapping))
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
