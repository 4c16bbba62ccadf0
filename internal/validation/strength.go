package validation

import "unicode/utf8"

var strengthLabels = [...]string{"", "Faible", "Moyen", "Fort", "Très fort"}

// PasswordStrength scores p from 0 to 4, one point each for: at least six
// characters, mixed ASCII case, a digit, a character that is not an ASCII
// letter or digit. The empty password scores 0 with an empty label.
func PasswordStrength(p string) (int, string) {
	if p == "" {
		return 0, strengthLabels[0]
	}

	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			special = true
		}
	}

	score := 0
	if utf8.RuneCountInString(p) >= 6 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if special {
		score++
	}
	return score, strengthLabels[score]
}
