package api

import (
	"github.com/JaimeStill/docchat/internal/documents"
	"github.com/JaimeStill/docchat/internal/extraction"
	"github.com/JaimeStill/docchat/internal/ingestion"
	"github.com/JaimeStill/docchat/internal/resources"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents  documents.System
	Extraction extraction.System
	Resources  resources.System
	Ingestion  ingestion.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	documentsSys := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	extractionSys := extraction.New(
		extraction.Config{
			FetchTimeout: runtime.Ingest.FetchTimeoutDuration(),
			MaxFetchSize: runtime.Ingest.MaxFetchSizeBytes(),
		},
		runtime.Logger,
	)

	builder := resources.NewBuilder(
		resources.NewChunker(runtime.Ingest.ChunkSize, runtime.Ingest.Overlap()),
		runtime.Embedder,
	)

	resourcesSys := resources.New(
		runtime.Database.Connection(),
		builder,
		runtime.Embedder,
		resources.SearchLimits{
			Default: runtime.Ingest.SearchLimit,
			Max:     runtime.Ingest.MaxSearchLimit,
		},
		runtime.Logger,
	)

	ingestionSys := ingestion.New(
		documentsSys,
		extractionSys,
		resourcesSys,
		runtime.Logger,
	)

	return &Domain{
		Documents:  documentsSys,
		Extraction: extractionSys,
		Resources:  resourcesSys,
		Ingestion:  ingestionSys,
	}
}
