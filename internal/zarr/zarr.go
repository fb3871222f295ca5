// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package zarr reads zarr-v2-layout chunked array stores over HTTP.
//
// Opening a store transfers metadata only: consolidated metadata when the
// store publishes it, per-array metadata documents otherwise. Bulk values
// move only when a selection is materialized, and then only the chunks
// covering the selection. Chunk keys absent from the store denote chunks
// filled entirely with the array's fill value.
package zarr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/gridpoint/internal/httputil"
)

// Store is a lazy handle on one chunked array store.
type Store struct {
	baseURL   string
	client    *http.Client
	userAgent string
	token     string
	attrs     map[string]any
	arrays    map[string]*Array

	// consolidated is true when the store published .zmetadata; array
	// lookups then never touch the network.
	consolidated bool
}

// Option configures a Store before the metadata fetch.
type Option func(*Store)

// WithUserAgent sets the User-Agent header on store requests.
func WithUserAgent(ua string) Option {
	return func(s *Store) { s.userAgent = ua }
}

// WithBearerToken sets an Authorization header on store requests.
func WithBearerToken(token string) Option {
	return func(s *Store) { s.token = token }
}

// Open fetches the store's metadata and returns a handle. No chunk data is
// transferred. Stores without consolidated metadata are opened with root
// attributes only; arrays load their metadata on first lookup.
func Open(ctx context.Context, client *http.Client, baseURL string, opts ...Option) (*Store, error) {
	s := &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		attrs:   map[string]any{},
		arrays:  map[string]*Array{},
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, found, err := s.get(ctx, ".zmetadata")
	if err != nil {
		return nil, err
	}
	if found {
		if err := s.loadConsolidated(raw); err != nil {
			return nil, fmt.Errorf("parsing consolidated metadata: %w", err)
		}
		s.consolidated = true
		return s, nil
	}

	// No consolidated metadata. Root attributes are optional.
	raw, found, err = s.get(ctx, ".zattrs")
	if err != nil {
		return nil, err
	}
	if found {
		if err := json.Unmarshal(raw, &s.attrs); err != nil {
			return nil, fmt.Errorf("parsing root attributes: %w", err)
		}
	}
	return s, nil
}

// Attrs returns the store's root attributes.
func (s *Store) Attrs() map[string]any { return s.attrs }

// Array returns the named array, fetching its metadata if the store was
// opened without consolidated metadata.
func (s *Store) Array(ctx context.Context, name string) (*Array, error) {
	if a, ok := s.arrays[name]; ok {
		return a, nil
	}
	if s.consolidated {
		return nil, fmt.Errorf("store has no array %q", name)
	}

	raw, found, err := s.get(ctx, name+"/.zarray")
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("store has no array %q", name)
	}
	var meta arrayMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parsing %s/.zarray: %w", name, err)
	}

	attrs := map[string]any{}
	raw, found, err = s.get(ctx, name+"/.zattrs")
	if err != nil {
		return nil, err
	}
	if found {
		if err := json.Unmarshal(raw, &attrs); err != nil {
			return nil, fmt.Errorf("parsing %s/.zattrs: %w", name, err)
		}
	}

	a, err := newArray(s, name, meta, attrs)
	if err != nil {
		return nil, err
	}
	s.arrays[name] = a
	return a, nil
}

// consolidatedDoc is the shape of a .zmetadata document.
type consolidatedDoc struct {
	Format   int                        `json:"zarr_consolidated_format"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

func (s *Store) loadConsolidated(raw []byte) error {
	var doc consolidatedDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc.Format != 1 {
		return fmt.Errorf("unsupported consolidated metadata format %d", doc.Format)
	}

	if rootAttrs, ok := doc.Metadata[".zattrs"]; ok {
		if err := json.Unmarshal(rootAttrs, &s.attrs); err != nil {
			return fmt.Errorf("root attributes: %w", err)
		}
	}

	for key, raw := range doc.Metadata {
		name, isArray := strings.CutSuffix(key, "/.zarray")
		if !isArray {
			continue
		}
		var meta arrayMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return fmt.Errorf("array %s: %w", name, err)
		}

		attrs := map[string]any{}
		if rawAttrs, ok := doc.Metadata[name+"/.zattrs"]; ok {
			if err := json.Unmarshal(rawAttrs, &attrs); err != nil {
				return fmt.Errorf("array %s attributes: %w", name, err)
			}
		}

		a, err := newArray(s, name, meta, attrs)
		if err != nil {
			return err
		}
		s.arrays[name] = a
	}
	return nil
}

// get fetches a store object. found is false on HTTP 404, which is a
// legitimate outcome for optional metadata and for fill-value chunks.
func (s *Store) get(ctx context.Context, path string) (body []byte, found bool, err error) {
	url := s.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request for %s: %w", url, err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := httputil.DoWithRetry(ctx, s.client, req, 0)
	if err != nil {
		return nil, false, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, false, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", url, err)
	}
	return body, true, nil
}
