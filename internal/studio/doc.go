// Package studio provides an HTTP client for the studio booking API.
//
// # Overview
//
// The client reads the public collections (services, packages, gallery
// images and categories, hero slides, testimonials) and writes enquiries and
// reviews. It does not retry, cache or fall back; the resource package decides
// what to show when a read fails.
//
//	client, err := studio.NewClient(cfg.APIURL,
//		studio.WithCredentials(credentials.File(cfg.TokenFile)),
//		studio.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	services, err := client.FetchServices(ctx, studio.ListQuery{ActiveOnly: true})
//
// # Collection Shapes
//
// The backend is inconsistent about envelopes. DecodeCollection accepts
// {"<key>": [...]} for the endpoint-specific key as well as "items" and
// "data", and a bare array. A JSON null is an empty collection.
//
// # Requests
//
// Every request sets Accept: application/json, a User-Agent, a fresh
// X-Request-ID and, when the credential provider yields one, a bearer token.
// CreateEnquiry also sends the caller's Idempotency-Key.
//
// # Errors
//
//   - NetworkError: no HTTP response (refused, timeout, cancelled)
//   - ServerError: non-2xx, with the body's "message" when present
//   - "decode response: ..." for a 2xx collection that cannot be decoded
//
// UserMessage extracts the server message for display.
//
// The Client is safe for concurrent use.
package studio
