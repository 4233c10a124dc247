package models

import (
	"strings"
	"unicode/utf8"

	dErrors "contacts/pkg/domain-errors"
)

const (
	maxUUIDRunes      = 180
	minPasswordLength = 8
)

type RegisterRequest struct {
	UUID          string `json:"uuid"`
	PlainPassword string `json:"plainPassword"`
}

func (r RegisterRequest) Validate() error {
	uuid := strings.TrimSpace(r.UUID)
	if uuid == "" {
		return dErrors.New(dErrors.CodeValidation, "uuid is required")
	}
	if utf8.RuneCountInString(uuid) > maxUUIDRunes {
		return dErrors.New(dErrors.CodeValidation, "uuid is too long")
	}
	if len(r.PlainPassword) < minPasswordLength {
		return dErrors.New(dErrors.CodeValidation, "plainPassword must be at least 8 characters")
	}
	return nil
}

// AuthRequest is a login attempt.
type AuthRequest struct {
	UUID     string `json:"uuid"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
