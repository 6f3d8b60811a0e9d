package api

import (
	"errors"
	"testing"
	"time"

	"hobbymatch/internal/domain"
	"hobbymatch/internal/matching"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected a validation error, got %v", err)
	return ve.Fields
}

func TestParseAgeRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		want     *matching.AgeRange
		bad      []string
	}{
		{"both", "20", "30", &matching.AgeRange{Min: 20, Max: 30}, nil},
		{"none", "", "", nil, nil},
		{"only min", "20", "", nil, nil},
		{"only max", "", "30", nil, nil},
		{"not a number", "x", "30", nil, []string{"age_min"}},
		{"negative", "20", "-1", nil, []string{"age_max"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAgeRange(tt.min, tt.max)
			if tt.bad != nil {
				fields := fieldErrors(t, err)
				for _, f := range tt.bad {
					assert.Contains(t, fields, f)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, parsePage(""))
	assert.Equal(t, 1, parsePage("abc"))
	assert.Equal(t, 3, parsePage("3"))
	assert.Equal(t, -2, parsePage("-2")) // clamped by the paginator
}

func TestValidateRegister(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	valid := func() RegisterRequest {
		return RegisterRequest{
			Username:    "alice.b+1@x",
			Email:       "alice@example.com",
			Password:    "long-enough",
			DateOfBirth: "2000-02-29",
		}
	}

	req := valid()
	dob, err := validateRegister(&req, now)
	require.NoError(t, err)
	require.NotNil(t, dob)
	assert.Equal(t, time.February, dob.Month())

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
		field  string
	}{
		{"username with space", func(r *RegisterRequest) { r.Username = "a b" }, "username"},
		{"username too long", func(r *RegisterRequest) { r.Username = string(make([]byte, 151)) }, "username"},
		{"display-name email", func(r *RegisterRequest) { r.Email = "Alice <alice@example.com>" }, "email"},
		{"numeric password", func(r *RegisterRequest) { r.Password = "1234567890" }, "password"},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }, "password"},
		{"missing dob", func(r *RegisterRequest) { r.DateOfBirth = "" }, "date_of_birth"},
		{"bad dob", func(r *RegisterRequest) { r.DateOfBirth = "15/06/2000" }, "date_of_birth"},
		{"future dob", func(r *RegisterRequest) { r.DateOfBirth = "2030-01-01" }, "date_of_birth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			_, err := validateRegister(&req, now)
			assert.Contains(t, fieldErrors(t, err), tt.field)
		})
	}
}

func TestValidateProfileAllowsEmptyDOB(t *testing.T) {
	req := ProfileRequest{Username: " alice ", Email: "alice@example.com"}
	dob, err := validateProfile(&req, time.Now())
	require.NoError(t, err)
	assert.Nil(t, dob)
	assert.Equal(t, "alice", req.Username)
}

func TestValidatePasswordChange(t *testing.T) {
	err := validatePasswordChange(&PasswordChangeRequest{OldPassword: "old", NewPassword1: "new-password", NewPassword2: "new-password"})
	assert.NoError(t, err)

	err = validatePasswordChange(&PasswordChangeRequest{NewPassword1: "new-password", NewPassword2: "other-password"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "old_password")
	assert.Contains(t, fields, "new_password2")
}
