// Package validation holds the jellydator/validation rules shared by the use cases.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/dheeverse/dheeverse/internal/errors"
)

// MinPasswordLength is the shortest account password accepted.
const MinPasswordLength = 8

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	pinRegex   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// WrapValidationError turns a validation failure into an ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// accountPassword requires MinPasswordLength characters with at least one upper-case
// letter, one lower-case letter and one digit.
type accountPassword struct{}

// AccountPassword is the strength rule for user passwords.
var AccountPassword validation.Rule = accountPassword{}

func (accountPassword) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}
	if s == "" {
		return nil
	}

	if len([]rune(s)) < MinPasswordLength {
		return validation.NewError("validation_password_min_length", "password must be at least 8 characters")
	}

	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	switch {
	case !upper:
		return validation.NewError("validation_password_uppercase", "password must contain an uppercase letter")
	case !lower:
		return validation.NewError("validation_password_lowercase", "password must contain a lowercase letter")
	case !digit:
		return validation.NewError("validation_password_number", "password must contain a number")
	}
	return nil
}

// Email accepts a bare address such as "asha@example.com".
var Email = validation.NewStringRuleWithError(
	emailRegex.MatchString,
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings made only of whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PIN accepts a 4 to 6 digit archive PIN.
var PIN = validation.NewStringRuleWithError(
	pinRegex.MatchString,
	validation.NewError("validation_pin", "must be 4 to 6 digits"),
)

// OneOf accepts only the listed values. Empty strings pass so Required can report them.
func OneOf(values ...string) validation.Rule {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = v
	}
	return validation.In(allowed...).
		ErrorObject(validation.NewError("validation_one_of", "must be one of: "+strings.Join(values, ", ")))
}
