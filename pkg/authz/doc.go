// Package authz implements the authorization service: role and permission
// management, grant and revoke operations on the two join relations, and
// permission resolution for users.
package authz
