package utils

import (
	"regexp"
	"strings"
)

// Only these mail domains are accepted at registration.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@(gmail\.com|outlook\.com|yahoo\.com|ac\.in|edu\.in|org|edu)$`)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// ValidEmail reports whether email matches the allowed domain set.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ValidateRegistration re-checks the registration form server-side. The
// client validates too, but the server is the authority. Returns a
// field-keyed error map, or nil when the input is valid.
func ValidateRegistration(reg Registration) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(reg.Name) == "" {
		errs["name"] = "Name is required"
	}
	if !ValidEmail(reg.Email) {
		errs["email"] = "Invalid email format"
	}
	if !phonePattern.MatchString(reg.Phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}
	if len(reg.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	} else if reg.Password != reg.ConfirmPassword {
		errs["password"] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
