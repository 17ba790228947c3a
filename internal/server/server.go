// Package server exposes the decode pipeline over HTTP for browser and
// script clients. It holds no state between requests; every upload is
// decoded from scratch and the response fully replaces anything the client
// showed before.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/martinrlilja/exodus/internal/config"
	"github.com/martinrlilja/exodus/internal/extract"
	"github.com/martinrlilja/exodus/internal/otpauth"
)

// FileResult is the decode outcome for one uploaded file.
type FileResult struct {
	Name     string            `json:"name"`
	Accounts []otpauth.Account `json:"accounts,omitempty"`
	// Error carries the user-facing status line: the no-code message, a
	// decode failure, or the aggregate of per-account conversion errors.
	Error string `json:"error,omitempty"`
}

// DecodeResponse is the body returned by POST /decode.
type DecodeResponse struct {
	RequestID string       `json:"request_id"`
	Files     []FileResult `json:"files"`
}

// NewRouter builds the HTTP routes.
func NewRouter(cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			log.Printf("health write: %v", err)
		}
	}).Methods("GET")
	r.HandleFunc("/decode", decodeHandler(cfg)).Methods("POST")
	return r
}

// decodeHandler accepts a multipart form with one or more parts named
// "image" and decodes each file independently and concurrently.
func decodeHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes)
		if err := r.ParseMultipartForm(cfg.MaxUploadBytes); err != nil {
			http.Error(w, "could not parse upload: "+err.Error(), http.StatusBadRequest)
			return
		}
		files := r.MultipartForm.File["image"]
		if len(files) == 0 {
			http.Error(w, `missing "image" form file`, http.StatusBadRequest)
			return
		}

		results := make([]FileResult, len(files))
		var wg sync.WaitGroup
		for i, header := range files {
			wg.Add(1)
			go func(i int, header *multipart.FileHeader) {
				defer wg.Done()
				results[i] = decodeOne(header)
			}(i, header)
		}
		wg.Wait()

		for _, res := range results {
			log.Printf("[%s] %s: %d accounts, error=%q", requestID, res.Name, len(res.Accounts), res.Error)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(DecodeResponse{
			RequestID: requestID,
			Files:     results,
		}); err != nil {
			log.Printf("[%s] encode response: %v", requestID, err)
		}
	}
}

func decodeOne(header *multipart.FileHeader) FileResult {
	result := FileResult{Name: header.Filename}

	f, err := header.Open()
	if err != nil {
		result.Error = "could not read upload: " + err.Error()
		return result
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		result.Error = "could not read upload: " + err.Error()
		return result
	}

	res, err := extract.Extract(data)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Accounts = res.Accounts
	result.Error = res.Message()
	return result
}
