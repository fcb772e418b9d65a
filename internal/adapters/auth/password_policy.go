package auth

import (
	"fmt"
	"strings"
	"unicode"

	"eventscheduler/internal/domain"
)

const defaultMinPasswordLength = 8

var commonPasswords = map[string]struct{}{
	"123": {}, "1234": {}, "12345": {}, "123456": {}, "1234567": {}, "12345678": {},
	"123456789": {}, "1234567890": {}, "000000": {}, "111111": {}, "123123": {},
	"654321": {}, "password": {}, "password1": {}, "password123": {}, "passw0rd": {},
	"qwerty": {}, "qwerty123": {}, "qwertyuiop": {}, "abc123": {}, "letmein": {},
	"welcome": {}, "admin": {}, "admin123": {}, "iloveyou": {}, "monkey": {},
	"dragon": {}, "football": {}, "baseball": {}, "sunshine": {}, "princess": {},
	"trustno1": {}, "superman": {}, "master": {}, "login": {}, "starwars": {},
}

// PasswordPolicy rejects short, common, all-digit and username-like passwords.
type PasswordPolicy struct {
	MinLength int
}

// NewPasswordPolicy returns the default policy.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{MinLength: defaultMinPasswordLength}
}

// Validate returns a *domain.WeakPasswordError listing every failed rule, or nil.
func (p *PasswordPolicy) Validate(username, password string) error {
	var reasons []string

	if similarToUsername(username, password) {
		reasons = append(reasons, "The password is too similar to the username.")
	}
	if len([]rune(password)) < p.MinLength {
		reasons = append(reasons, fmt.Sprintf("This password is too short. It must contain at least %d characters.", p.MinLength))
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		reasons = append(reasons, "This password is too common.")
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		reasons = append(reasons, "This password is entirely numeric.")
	}

	if len(reasons) > 0 {
		return &domain.WeakPasswordError{Reasons: reasons}
	}
	return nil
}

func similarToUsername(username, password string) bool {
	u := strings.ToLower(strings.TrimSpace(username))
	pw := strings.ToLower(password)
	if len(u) < 3 || pw == "" {
		return false
	}
	return strings.Contains(pw, u) || strings.Contains(u, pw)
}
