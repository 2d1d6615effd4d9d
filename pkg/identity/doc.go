// Package identity provides authenticated identity management for API requests.
//
// This package separates the concept of an authenticated identity from the
// raw token parsing. An Identity combines validated token claims (user id,
// email, timestamps) into a value carried through the request context.
//
// # Basic Usage
//
//	// Create identity from validated claims
//	id, err := identity.FromClaims(claims)
//
//	// Store in request context
//	ctx = identity.Set(ctx, id)
//
//	// Retrieve from context
//	id, ok := identity.Get(ctx)
//
// The authn package handles parsing and validating the raw auth token.
// The identity package builds on that to give handlers a typed view of who
// is making the request.
package identity
