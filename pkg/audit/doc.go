// Package audit emits security audit events for authentication and
// authorization activity.
//
// Events are written to stdout in RFC5424 syslog format, and optionally
// persisted to a separate audit database when AUDIT_DATABASE_URL is set.
// Audit logging is on by default and can be disabled with
// HEARTH_AUDIT_ENABLED=false.
//
// # Usage
//
//	audit.Log(audit.AuthenticateEvent{
//	    Email:    "alice@example.com",
//	    ClientIP: clientIP,
//	    Success:  true,
//	})
//
// Event types cover login attempts, registrations, password changes,
// permission checks, and grant changes.
package audit
