// package forms validates registration and login input before submission
package forms

import "regexp"

// Violation messages, surfaced to the user in rule order.
const (
	MsgNameEmpty     = "name must not be empty."
	MsgNameLetters   = "name may only contain letters."
	MsgEmailEmpty    = "email must not be empty."
	MsgEmailInvalid  = "must be a valid email."
	MsgPasswordEmpty = "password must not be empty."
	MsgPasswordShort = "password must be at least 4 characters."
	MsgAllRequired   = "all fields required"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 4

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateRegistration checks registration input and returns every violation
// in field order (name, email, password). An empty result means the input is
// accepted. Violations are collected, not short-circuited, so the user sees
// all problems at once.
func ValidateRegistration(name, email, password string) []string {
	violations := []string{}

	if name == "" {
		violations = append(violations, MsgNameEmpty)
	} else if !nameRe.MatchString(name) {
		violations = append(violations, MsgNameLetters)
	}

	if email == "" {
		violations = append(violations, MsgEmailEmpty)
	} else if !emailRe.MatchString(email) {
		violations = append(violations, MsgEmailInvalid)
	}

	if password == "" {
		violations = append(violations, MsgPasswordEmpty)
	} else if len(password) < MinPasswordLength {
		violations = append(violations, MsgPasswordShort)
	}

	return violations
}

// ValidateLogin checks that both login fields are present. Finer-grained
// feedback is not needed here, so a single combined violation is returned.
func ValidateLogin(email, password string) []string {
	if email == "" || password == "" {
		return []string{MsgAllRequired}
	}
	return []string{}
}
