package services

import (
	"strings"

	"pdfdesk/internal/authz"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// requireAll fails with msg when any of the values is blank.
func requireAll(msg string, values ...string) error {
	for _, v := range values {
		if blank(v) {
			return validationError(msg)
		}
	}
	return nil
}

func normalizeEmail(email string) string { return strings.TrimSpace(email) }

func validateRegister(firstName, lastName, email, password, role string) (string, error) {
	if err := requireAll("All fields are required (firstName, lastName, email, password)",
		firstName, lastName, email, password); err != nil {
		return "", err
	}
	r, ok := authz.NormalizeRole(role)
	if !ok {
		return "", validationError("userRole must be either user or admin")
	}
	return r, nil
}
