package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "password123": {}, "12345678": {}, "123456789": {},
	"1234567890": {}, "qwerty123": {}, "qwertyuiop": {}, "iloveyou": {}, "sunshine": {},
	"princess": {}, "football": {}, "baseball": {}, "welcome1": {}, "abc12345": {},
	"letmein1": {}, "trustno1": {}, "superman": {}, "11111111": {}, "00000000": {},
	"passw0rd": {}, "admin123": {}, "monkey123": {}, "dragon123": {}, "starwars": {},
}

func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordProblems applies the password policy and returns every violated rule.
// attrs are account attributes (username, names, email) the password must not resemble.
func PasswordProblems(password string, attrs ...string) []string {
	var problems []string

	lower := strings.ToLower(password)
	for _, attr := range attrs {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if i := strings.IndexByte(attr, '@'); i > 0 {
			attr = attr[:i]
		}
		if len(attr) < 3 {
			continue
		}
		if strings.Contains(lower, attr) || strings.Contains(attr, lower) {
			problems = append(problems, "The password is too similar to your personal information.")
			break
		}
	}

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}

	if _, common := commonPasswords[lower]; common {
		problems = append(problems, "This password is too common.")
	}

	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		problems = append(problems, "This password is entirely numeric.")
	}

	return problems
}
