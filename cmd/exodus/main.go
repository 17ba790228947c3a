// Command exodus decodes Google Authenticator export QR codes from image
// files and prints each contained account as an otpauth:// URL.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/martinrlilja/exodus/internal/export"
	"github.com/martinrlilja/exodus/internal/extract"
	"github.com/martinrlilja/exodus/internal/otpauth"
)

type fileResult struct {
	Name     string            `json:"name"`
	Accounts []otpauth.Account `json:"accounts,omitempty"`
	Error    string            `json:"error,omitempty"`
}

func main() {
	jsonOut := flag.Bool("json", false, "print results as JSON instead of text")
	pngDir := flag.String("png-dir", "", "write one PNG per account into this directory")
	gridOut := flag.String("grid", "", "write all account QR codes into a single grid PNG")
	apngOut := flag.String("apng", "", "write all account QR codes as an animated PNG")
	delay := flag.Int("delay", 2000, "frame delay in milliseconds for -apng")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("Usage: %s [flags] image.png [image2.jpg ...]", os.Args[0])
	}

	// Files are independent; decode them concurrently and report in input
	// order.
	results := make([]fileResult, flag.NArg())
	var wg sync.WaitGroup
	for i, path := range flag.Args() {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			results[i] = decodeFile(path)
		}(i, path)
	}
	wg.Wait()

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("encode JSON: %v", err)
		}
	} else {
		printResults(results)
	}

	var accounts []otpauth.Account
	for _, res := range results {
		accounts = append(accounts, res.Accounts...)
	}
	if len(accounts) > 0 {
		if *pngDir != "" {
			if err := export.PNGFiles(accounts, *pngDir); err != nil {
				log.Fatalf("Failed to write PNG files: %v", err)
			}
			fmt.Printf("Wrote %d QR code PNGs to %s.\n", len(accounts), *pngDir)
		}
		if *gridOut != "" {
			if err := export.Grid(accounts, *gridOut); err != nil {
				log.Fatalf("Failed to write grid PNG: %v", err)
			}
			fmt.Printf("Successfully created grid QR code %s.\n", *gridOut)
		}
		if *apngOut != "" {
			if err := export.Animated(accounts, *apngOut, *delay); err != nil {
				log.Fatalf("Failed to write animated PNG: %v", err)
			}
			fmt.Printf("Successfully created animated QR code %s.\n", *apngOut)
		}
	}
}

func decodeFile(path string) fileResult {
	result := fileResult{Name: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Error = err.Error()
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

func printResults(results []fileResult) {
	for _, res := range results {
		fmt.Printf("%s:\n", res.Name)
		if res.Error != "" {
			fmt.Printf("  %s\n", res.Error)
		}
		for _, a := range res.Accounts {
			title := a.Name
			if a.Issuer != "" {
				title = a.Issuer + " " + a.Name
			}
			fmt.Printf("  %s (%s)\n", title, a.Kind)
			fmt.Printf("    secret: %s\n", a.Secret)
			fmt.Printf("    url:    %s\n", a.URL)
		}
	}
}
