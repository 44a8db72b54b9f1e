// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the memory/checkpoint/document
// agent API that memdeck drives.
//
// # Key Types
//
//   - Client: rate-limited JSON client with a runtime-switchable base URL
//   - HTTPError: non-2xx response carrying the body text (or status text)
//
// # Usage
//
//	client := backend.NewClient("http://localhost:8000")
//	v, err := client.Do(ctx, http.MethodPost, "/memory/search", map[string]any{"query": "deploys", "limit": 5})
//	if err != nil {
//	    var httpErr *backend.HTTPError
//	    if errors.As(err, &httpErr) { ... }
//	}
//
// JSON responses decode to the generic interface{} shapes produced by
// encoding/json (maps, slices, float64, string, bool, nil). Any other content
// type is returned as a string.
package backend
