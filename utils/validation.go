// ABOUTME: Pure form validation for the signup and profile flows
// ABOUTME: Each validator returns all failures at once so forms can show every error

package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"medinsight-client/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationResult reports whether a value passed and every reason it did not.
type ValidationResult struct {
	IsValid bool
	Errors  []string
}

func resultOf(errs []string) ValidationResult {
	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}

// ValidateEmail checks the address has a local part, a host, and a dot in
// the host. Full RFC validation is the backend's job.
func ValidateEmail(email string) ValidationResult {
	var errs []string
	if strings.TrimSpace(email) == "" {
		errs = append(errs, "Email is required")
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, "Email is invalid")
	}
	return resultOf(errs)
}

// ValidatePassword enforces the minimum credential policy: eight characters
// with at least one lowercase letter, one uppercase letter, and one digit.
func ValidatePassword(password string) ValidationResult {
	var errs []string
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower {
		errs = append(errs, "Password must contain a lowercase letter")
	}
	if !hasUpper {
		errs = append(errs, "Password must contain an uppercase letter")
	}
	if !hasDigit {
		errs = append(errs, "Password must contain a number")
	}
	return resultOf(errs)
}

// ValidateName checks a person's name field: at least two characters, only
// letters, spaces, hyphens and apostrophes.
func ValidateName(field, name string) ValidationResult {
	var errs []string
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < 2 {
		errs = append(errs, fmt.Sprintf("%s must be at least 2 characters", field))
		return resultOf(errs)
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '\'' {
			errs = append(errs, fmt.Sprintf("%s contains invalid characters", field))
			break
		}
	}
	return resultOf(errs)
}

// ValidateOrganization checks an organization selection. A selection naming
// a new organization must carry a province and a description.
func ValidateOrganization(sel models.OrganizationSelection) ValidationResult {
	var errs []string
	if strings.TrimSpace(sel.Name) == "" {
		errs = append(errs, "Organization name is required")
		return resultOf(errs)
	}
	hasProvince := strings.TrimSpace(sel.Province) != ""
	hasDescription := strings.TrimSpace(sel.Description) != ""
	if hasProvince != hasDescription {
		if !hasProvince {
			errs = append(errs, "Province is required for a new organization")
		}
		if !hasDescription {
			errs = append(errs, "Description is required for a new organization")
		}
	}
	return resultOf(errs)
}

// ValidateSignupForm runs every field validator and merges the failures.
func ValidateSignupForm(payload models.SignupPayload, org models.OrganizationSelection) ValidationResult {
	var errs []string
	errs = append(errs, ValidateEmail(payload.Email).Errors...)
	errs = append(errs, ValidatePassword(payload.Password).Errors...)
	errs = append(errs, ValidateName("First name", payload.FirstName).Errors...)
	errs = append(errs, ValidateName("Last name", payload.LastName).Errors...)
	if org.Name != "" || org.Province != "" || org.Description != "" {
		errs = append(errs, ValidateOrganization(org).Errors...)
	}
	return resultOf(errs)
}
