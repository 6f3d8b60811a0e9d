package api

import (
	"net/mail" // Email address parsing
	"regexp"   // Regular expressions
	"strconv"  // String conversion
	"strings"  // String manipulation
	"time"     // Date parsing

	"hobbymatch/internal/domain"   // Validation errors
	"hobbymatch/internal/matching" // Age ranges
)

const (
	dateLayout        = "2006-01-02"
	maxUsernameLength = 150
	maxNameLength     = 150
	maxEmailLength    = 254
	maxHobbyLength    = 100
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores bytes past 72
	requiredMsg       = "This field is required."
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`) // Letters, digits and @/./+/-/_

// validateUsername checks the username format
func validateUsername(v *domain.ValidationError, username string) {
	switch {
	case username == "":
		v.Add("username", requiredMsg)
	case len(username) > maxUsernameLength:
		v.Add("username", "Ensure this value has at most 150 characters.")
	case !usernamePattern.MatchString(username):
		v.Add("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}
}

func validateEmail(v *domain.ValidationError, email string) {
	if email == "" {
		v.Add("email", requiredMsg)
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || len(email) > maxEmailLength {
		v.Add("email", "Enter a valid email address.")
	}
}

func validateNames(v *domain.ValidationError, first, last string) {
	if len(first) > maxNameLength {
		v.Add("first_name", "Ensure this value has at most 150 characters.")
	}
	if len(last) > maxNameLength {
		v.Add("last_name", "Ensure this value has at most 150 characters.")
	}
}

// validatePassword checks length and rejects all-digit passwords
func validatePassword(v *domain.ValidationError, field, password string) {
	switch {
	case password == "":
		v.Add(field, requiredMsg)
	case len(password) < minPasswordLength:
		v.Add(field, "This password is too short. It must contain at least 8 characters.")
	case len(password) > maxPasswordLength:
		v.Add(field, "This password is too long. It must contain at most 72 characters.")
	default:
		if _, err := strconv.ParseUint(password, 10, 64); err == nil {
			v.Add(field, "This password is entirely numeric.")
		}
	}
}

// parseDateOfBirth parses an optional YYYY-MM-DD date that is not in the future
func parseDateOfBirth(v *domain.ValidationError, raw string, required bool, now time.Time) *time.Time {
	if raw == "" {
		if required {
			v.Add("date_of_birth", requiredMsg)
		}
		return nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		v.Add("date_of_birth", "Enter a valid date.")
		return nil
	}
	if d.After(now) {
		v.Add("date_of_birth", "Date of birth cannot be in the future.")
		return nil
	}
	return &d
}

// validateRegister checks a registration payload and returns the parsed date of birth
func validateRegister(req *RegisterRequest, now time.Time) (*time.Time, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	v := domain.NewValidationError()
	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	validateNames(v, req.FirstName, req.LastName)
	validatePassword(v, "password", req.Password)
	dob := parseDateOfBirth(v, req.DateOfBirth, true, now)
	return dob, v.OrNil()
}

// validateProfile checks a profile update payload and returns the parsed date of birth
func validateProfile(req *ProfileRequest, now time.Time) (*time.Time, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	v := domain.NewValidationError()
	validateUsername(v, req.Username)
	validateEmail(v, req.Email)
	validateNames(v, req.FirstName, req.LastName)
	dob := parseDateOfBirth(v, req.DateOfBirth, false, now)
	return dob, v.OrNil()
}

// validatePasswordChange checks the two new passwords agree and are acceptable
func validatePasswordChange(req *PasswordChangeRequest) error {
	v := domain.NewValidationError()
	if req.OldPassword == "" {
		v.Add("old_password", requiredMsg)
	}
	validatePassword(v, "new_password1", req.NewPassword1)
	if req.NewPassword2 == "" {
		v.Add("new_password2", requiredMsg)
	} else if req.NewPassword1 != req.NewPassword2 {
		v.Add("new_password2", "The two password fields didn't match.")
	}
	return v.OrNil()
}

// validateHobbyName trims and checks a hobby name
func validateHobbyName(name string) (string, error) {
	name = strings.TrimSpace(name)
	v := domain.NewValidationError()
	switch {
	case name == "":
		v.Add("name", requiredMsg)
	case len(name) > maxHobbyLength:
		v.Add("name", "Ensure this value has at most 100 characters.")
	}
	return name, v.OrNil()
}

// parseAgeRange returns nil unless both bounds are given
func parseAgeRange(rawMin, rawMax string) (*matching.AgeRange, error) {
	if rawMin == "" || rawMax == "" {
		return nil, nil
	}
	v := domain.NewValidationError()
	lo, err := strconv.Atoi(rawMin)
	if err != nil || lo < 0 {
		v.Add("age_min", "Enter a whole number.")
	}
	hi, err := strconv.Atoi(rawMax)
	if err != nil || hi < 0 {
		v.Add("age_max", "Enter a whole number.")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return &matching.AgeRange{Min: lo, Max: hi}, nil
}

// parsePage reads a 1-based page number; anything unparsable is page 1
func parsePage(raw string) int {
	p, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return p
}
