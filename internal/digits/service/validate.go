package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
)

const (
	numberLength      = 5
	maxUsernameLength = 150
	minPasswordLength = 8
)

// normalizeNumber trims surrounding whitespace and checks the value is exactly
// five ASCII digits.
func normalizeNumber(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if len(v) != numberLength {
		return "", invalid(field, "enter exactly 5 digits (0-9)")
	}
	for i := range len(v) {
		if v[i] < '0' || v[i] > '9' {
			return "", invalid(field, "enter exactly 5 digits (0-9)")
		}
	}
	return v, nil
}

// ValidateStart checks the start-display form.
func ValidateStart(in domain.StartInput) (domain.StartInput, error) {
	n, err := normalizeNumber("user_number", in.UserNumber)
	if err != nil {
		return domain.StartInput{}, err
	}
	return domain.StartInput{UserNumber: n}, nil
}

// ValidateAnswers checks that one single character was supplied per position.
func ValidateAnswers(in domain.VerifyInput, want int) error {
	if len(in.Chars) != want {
		return invalid("chars", "each input must be a single character")
	}
	for _, c := range in.Chars {
		if utf8.RuneCountInString(c) != 1 {
			return invalid("chars", "each input must be a single character")
		}
	}
	return nil
}

func validUsernameRune(r rune) bool {
	switch r {
	case '@', '.', '+', '-', '_':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// ValidateUsername applies the registration rules: 1 to 150 characters made
// of letters, digits and @.+-_ only.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return invalid("username", "this field is required")
	}
	if n > maxUsernameLength {
		return invalid("username", "ensure this value has at most 150 characters")
	}
	for _, r := range username {
		if !validUsernameRune(r) {
			return invalid("username", "enter a valid username, letters, digits and @/./+/-/_ only")
		}
	}
	return nil
}

// ValidateNewPassword checks a new password and its confirmation.
func ValidateNewPassword(username, password1, password2 string) error {
	if password1 == "" {
		return invalid("password1", "this field is required")
	}
	if password1 != password2 {
		return invalid("password2", "the two password fields didn't match")
	}
	if utf8.RuneCountInString(password1) < minPasswordLength {
		return invalid("password2", "this password is too short, it must contain at least 8 characters")
	}
	if isAllDigits(password1) {
		return invalid("password2", "this password is entirely numeric")
	}
	if username != "" && strings.EqualFold(password1, username) {
		return invalid("password2", "the password is too similar to the username")
	}
	return nil
}

// ValidateRegister checks the registration form, uniqueness excluded.
func ValidateRegister(in domain.RegisterInput) (domain.RegisterInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := ValidateUsername(in.Username); err != nil {
		return domain.RegisterInput{}, err
	}
	if err := ValidateNewPassword(in.Username, in.Password1, in.Password2); err != nil {
		return domain.RegisterInput{}, err
	}
	return in, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
