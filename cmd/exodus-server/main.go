// Command exodus-server runs the decode pipeline behind an HTTP API.
package main

import (
	"log"
	"net/http"

	"github.com/martinrlilja/exodus/internal/config"
	"github.com/martinrlilja/exodus/internal/server"
)

func main() {
	cfg := config.Load()
	r := server.NewRouter(cfg)

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
