package password

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

// MinStrengthScore is the minimum zxcvbn score (0-4) a password must reach.
const MinStrengthScore = 2

// CheckStrength scores a candidate password. It returns a human-readable
// message describing the deficiency when the score is below the threshold,
// or "" when the password is acceptable. User-derived inputs (name, email)
// are penalized by the estimator.
func CheckStrength(password string, userInputs ...string) string {
	result := zxcvbn.PasswordStrength(password, userInputs)
	if result.Score >= MinStrengthScore {
		return ""
	}
	msg := fmt.Sprintf("Password is too weak. Score: %d/4.", result.Score)
	if len(password) < 8 {
		msg += " Use at least 8 characters."
	} else {
		msg += " Avoid common words, repeats, and predictable sequences."
	}
	return msg
}
