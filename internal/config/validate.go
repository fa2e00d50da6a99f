package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/BurntSushi/toml"
)

// ValidationSeverity indicates whether a validation issue is an error or
// warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates an informational issue; the configuration
	// works but may have problems.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g. "api.base_url"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	var errs []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityError {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	var warns []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == SeverityWarning {
			warns = append(warns, issue)
		}
	}
	return warns
}

// String renders each issue on its own line, errors first.
func (vr *ValidationResult) String() string {
	var b strings.Builder
	for _, issue := range vr.Errors() {
		fmt.Fprintf(&b, "  %s: %s: %s\n", issue.Severity, issue.Field, issue.Message)
	}
	for _, issue := range vr.Warnings() {
		fmt.Fprintf(&b, "  %s: %s: %s\n", issue.Severity, issue.Field, issue.Message)
	}
	return b.String()
}

// validRoles is the set of valid values for profile.role.
var validRoles = map[string]bool{
	"":        true,
	"student": true,
	"org":     true,
	"manager": true,
	"airport": true,
	"admin":   true,
}

// Validate checks the configuration for correctness and completeness. meta
// may be nil when no file was loaded; when present, unknown keys are
// reported as warnings so typos do not silently fall back to defaults.
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	result := &ValidationResult{}
	add := func(sev ValidationSeverity, field, msg string) {
		result.Issues = append(result.Issues, ValidationIssue{Severity: sev, Field: field, Message: msg})
	}

	if cfg.API.BaseURL == "" {
		add(SeverityError, "api.base_url", "must be set")
	} else if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		add(SeverityError, "api.base_url", "must be an absolute URL")
	} else if strings.HasSuffix(cfg.API.BaseURL, "/") {
		add(SeverityWarning, "api.base_url", "trailing slash will be doubled in request paths")
	}

	if cfg.API.TimeoutSeconds < 0 {
		add(SeverityError, "api.timeout_seconds", "must not be negative")
	} else if cfg.API.TimeoutSeconds > 300 {
		add(SeverityWarning, "api.timeout_seconds", "over five minutes; submissions will appear hung")
	}

	if cfg.Catalog.DataDir == "" {
		add(SeverityError, "catalog.data_dir", "must be set")
	}

	if !validRoles[cfg.Profile.Role] {
		add(SeverityError, "profile.role", fmt.Sprintf("unknown role %q", cfg.Profile.Role))
	}

	if meta != nil {
		for _, key := range meta.Undecoded() {
			add(SeverityWarning, key.String(), "unknown configuration key")
		}
	}

	return result
}
