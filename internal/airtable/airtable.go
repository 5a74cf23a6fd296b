// Package airtable is a thin client for the Airtable REST API, scoped to the
// operations the pipeline needs: fetching every record of a table and
// upserting record batches.
package airtable

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	apiURL = "https://api.airtable.com/v0"

	// Airtable enforces 5 requests per second per base.
	requestsPerSecond = 5

	// MaxBatchSize is the Airtable limit on records per write request.
	MaxBatchSize = 10
)

type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	baseID     string
	logger     *zap.Logger
	limiter    *rate.Limiter
	HTTPClient *http.Client
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token, baseID string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		baseID: baseID,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		logger:  logger,
	}
}

// Chunk splits records into slices of at most size records. Batch boundaries
// carry no semantic meaning; they only respect the API payload limit.
func Chunk(records []Record, size int) [][]Record {
	if size <= 0 {
		size = MaxBatchSize
	}

	var batches [][]Record
	for i := 0; i < len(records); i += size {
		j := i + size
		if j > len(records) {
			j = len(records)
		}
		batches = append(batches, records[i:j])
	}

	return batches
}
