package audit

import (
	"fmt"
	"strconv"
	"strings"
)

// AuthenticateEvent represents a login attempt
type AuthenticateEvent struct {
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) MessageID() string {
	return "authn"
}

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully logged in", e.Email)
	}
	msg := fmt.Sprintf("%s failed to log in", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AuthenticateEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "login",
			"result":    result,
		},
	}
}

// RegistrationEvent represents an account registration attempt
type RegistrationEvent struct {
	Email        string
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e RegistrationEvent) MessageID() string {
	return "register"
}

func (e RegistrationEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("account registered for %s", e.Email)
	}
	msg := fmt.Sprintf("failed to register account for %s", e.Email)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e RegistrationEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e RegistrationEvent) Facility() int {
	return FacilityAuthPriv
}

func (e RegistrationEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDSubject: {
			"user": e.Email,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "register",
			"result":    result,
		},
	}
}

// PasswordChangeEvent represents a credential change attempt
type PasswordChangeEvent struct {
	UserID   int64
	ClientIP string
	Success  bool
}

func (e PasswordChangeEvent) MessageID() string {
	return "password"
}

func (e PasswordChangeEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("user %d changed their password", e.UserID)
	}
	return fmt.Sprintf("user %d failed to change their password", e.UserID)
}

func (e PasswordChangeEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e PasswordChangeEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PasswordChangeEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "change-password",
			"result":    result,
		},
	}
}

// CheckEvent represents a permission check
type CheckEvent struct {
	UserID     int64
	Permission string
	ClientIP   string
	Allowed    bool
}

func (e CheckEvent) MessageID() string {
	return "check"
}

func (e CheckEvent) Message() string {
	if e.Allowed {
		return fmt.Sprintf("user %d checked permission %s: allowed", e.UserID, e.Permission)
	}
	return fmt.Sprintf("user %d checked permission %s: denied", e.UserID, e.Permission)
}

func (e CheckEvent) Severity() Severity {
	return SeverityInfo
}

func (e CheckEvent) Facility() int {
	return FacilityAuthPriv
}

func (e CheckEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if !e.Allowed {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDAuth: {
			"user": strconv.FormatInt(e.UserID, 10),
		},
		SDIDSubject: {
			"permission": e.Permission,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "check",
			"result":    result,
		},
	}
}

// GrantEvent represents a grant or revoke of roles or permissions
type GrantEvent struct {
	Operation    string // "grant" or "revoke"
	SubjectKind  string // "user" or "role"
	SubjectID    int64
	TargetKind   string // "role" or "permission"
	TargetIDs    []int64
	ClientIP     string
	Success      bool
	ErrorMessage string
}

func (e GrantEvent) MessageID() string {
	return e.Operation
}

func (e GrantEvent) Message() string {
	targets := make([]string, len(e.TargetIDs))
	for i, id := range e.TargetIDs {
		targets[i] = strconv.FormatInt(id, 10)
	}
	subject := fmt.Sprintf("%s %d", e.SubjectKind, e.SubjectID)
	target := fmt.Sprintf("%ss [%s]", e.TargetKind, strings.Join(targets, " "))

	if e.Success {
		if e.Operation == "revoke" {
			return fmt.Sprintf("revoked %s from %s", target, subject)
		}
		return fmt.Sprintf("granted %s to %s", target, subject)
	}
	msg := fmt.Sprintf("failed to %s %s for %s", e.Operation, target, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e GrantEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e GrantEvent) Facility() int {
	return FacilityAuth
}

func (e GrantEvent) StructuredData() map[string]map[string]string {
	targets := make([]string, len(e.TargetIDs))
	for i, id := range e.TargetIDs {
		targets[i] = strconv.FormatInt(id, 10)
	}
	result := "success"
	if !e.Success {
		result = "failure"
	}
	return map[string]map[string]string{
		SDIDSubject: {
			e.SubjectKind: strconv.FormatInt(e.SubjectID, 10),
			"targets":     strings.Join(targets, ","),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    result,
		},
	}
}
