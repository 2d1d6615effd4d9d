// Package authn implements the authentication service: registration with
// argon2id credential derivation, password login, and signed token issuance.
package authn
