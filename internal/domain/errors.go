package domain

import (
	"errors"  // Error inspection
	"sort"    // Stable field ordering
	"strings" // Message joining
)

// Kind classifies a domain error so the HTTP boundary can choose a status
type Kind int

// Error kinds
const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindMethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// Error is a business-rule outcome with a client-safe message
type Error struct {
	Kind    Kind   // Classification
	Message string // Message returned to the client
}

func (e *Error) Error() string { return e.Message }

// Named outcomes of the relationship store
var (
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User does not exist."}
	ErrRequestNotFound    = &Error{Kind: KindNotFound, Message: "Friend request not found."}
	ErrNotReceiver        = &Error{Kind: KindNotFound, Message: "Friend request not found."}
	ErrFriendshipNotFound = &Error{Kind: KindNotFound, Message: "Friend not found!"}
	ErrHobbyNotFound      = &Error{Kind: KindNotFound, Message: "Hobby does not exist."}
	ErrAlreadyFriends     = &Error{Kind: KindConflict, Message: "You are already friends with this user."}
	ErrDuplicateRequest   = &Error{Kind: KindConflict, Message: "Friend request already sent."}
	ErrUsernameTaken      = &Error{Kind: KindConflict, Message: "A user with that username already exists."}
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "A user with that email already exists."}
	ErrSelfRequest        = &Error{Kind: KindInvalidInput, Message: "You cannot send a friend request to yourself."}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated, Message: "Authentication required."}
	ErrInvalidCredentials = &Error{Kind: KindUnauthenticated, Message: "Invalid credentials"}
	ErrForbidden          = &Error{Kind: KindForbidden, Message: "Admin access required"}
)

// KindOf reports the kind of err, KindInternal for anything unclassified
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindInvalidInput
	}
	return KindInternal
}

// ValidationError collects per-field input problems
type ValidationError struct {
	Fields map[string]string // Field name to message
}

// NewValidationError returns an empty ValidationError ready for Add
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add records a problem with field, keeping the first message per field
func (v *ValidationError) Add(field, msg string) {
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = msg
	}
}

// OrNil returns v when it holds at least one problem, nil otherwise
func (v *ValidationError) OrNil() error {
	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationError) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v.Fields[k]
	}
	return strings.Join(parts, "; ")
}
