package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

const EnvAPIURL = "DOCCHAT_API_URL"

func main() {
	var (
		apiURL     = flag.String("api", "", "Base URL of the docchat API (e.g. http://localhost:8080/api)")
		dir        = flag.String("dir", "", "Directory of documents to upload")
		uploadOnly = flag.Bool("upload-only", false, "Store documents without embedding them")
		timeout    = flag.Duration("timeout", 5*time.Minute, "Per-document request timeout")
	)
	flag.Parse()

	if *apiURL == "" {
		*apiURL = os.Getenv(EnvAPIURL)
	}
	if *apiURL == "" || *dir == "" {
		fmt.Println("usage: seed -api <base-url> -dir <path> [-upload-only] [-timeout 5m]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	s := &Seeder{
		BaseURL: *apiURL,
		Embed:   !*uploadOnly,
		Client:  &http.Client{Timeout: *timeout},
	}

	results, err := s.SeedDir(context.Background(), *dir)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	failed := 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			fmt.Printf("  FAIL %s: %v\n", r.Path, r.Err)
		default:
			fmt.Printf("  %-8s %s (%s)\n", r.Status, r.Path, r.DocumentID)
		}
	}

	fmt.Printf("%d documents processed, %d failed\n", len(results), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
