// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// accelweb streams readings from the simulated accelerometer over HTTP:
// the latest sample as JSON on /api/acceleration and a live feed on the
// /ws websocket.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/henrydang80/accelsim/internal/feed"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	interval := flag.Duration("interval", 50*time.Millisecond, "sampling interval")
	flag.Parse()

	f, err := feed.New(nil)
	if err != nil {
		log.Fatalf("failed to start the simulated chip: %v", err)
	}

	var (
		mu       sync.RWMutex
		last     feed.Reading
		haveLast bool
	)

	// Sampling loop; the handlers below only ever see the latest value.
	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for range ticker.C {
			r, err := f.Next()
			if err != nil {
				log.Printf("sample error: %v", err)
				continue
			}
			mu.Lock()
			last = r
			haveLast = true
			mu.Unlock()
		}
	}()

	http.HandleFunc("/api/acceleration", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveLast {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(last); err != nil {
			log.Printf("json encode error: %v", err)
		}
	})

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade error: %v", err)
			return
		}
		defer conn.Close()
		log.Printf("websocket client connected: %s", conn.RemoteAddr())

		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for range ticker.C {
			mu.RLock()
			r, ok := last, haveLast
			mu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(r); err != nil {
				log.Printf("websocket client gone: %v", err)
				return
			}
		}
	})

	log.Printf("web server listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
