// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for archive requests.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) with exponential backoff. Rate limiting is the only condition
// retried; archive failures stay single-attempt and surface to the caller.
// The delay starts at RetryBaseDelay (10 s) and doubles each attempt.
//
// When maxRetries is 0 the default (5) is used. On each 429 the response
// body is drained and closed before sleeping. If the context is cancelled
// during a backoff wait the function returns ctx.Err(). After exhausting
// retries the last 429 response is returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries — return the 429 response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
