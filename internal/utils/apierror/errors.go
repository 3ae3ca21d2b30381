package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

// APIError is the uniform failure envelope: {"error": true, "message": "..."}.
type APIError struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

var (
	MalformedJSONError  = NewSimple(http.StatusBadRequest, "Malformed JSON body")
	InternalServerError = NewSimple(http.StatusInternalServerError, "Internal server error")
	NotFoundError       = NewSimple(http.StatusNotFound, "Not found")

	/*
	 * Authentication gate
	 */
	AuthRequiredError     = NewSimple(http.StatusUnauthorized, "Authentication required")
	InvalidAuthTokenError = NewSimple(http.StatusUnauthorized, "Invalid or expired token")

	/*
	 * Account flows
	 */
	UsernameTakenError      = NewSimple(http.StatusBadRequest, "Username already taken")
	EmailRegisteredError    = NewSimple(http.StatusBadRequest, "Email already registered")
	UserNotFoundError       = NewSimple(http.StatusBadRequest, "User not found")
	AlreadyVerifiedError    = NewSimple(http.StatusBadRequest, "Email already verified")
	CodeMismatchError       = NewSimple(http.StatusBadRequest, "Invalid verification code")
	CodeExpiredError        = NewSimple(http.StatusBadRequest, "Verification code expired")
	InvalidCredentialsError = NewSimple(http.StatusBadRequest, "Invalid credentials")
	VerifyEmailFirstError   = NewSimple(http.StatusBadRequest, "Please verify your email first")
	RegistrationFailedError = NewSimple(http.StatusInternalServerError, "Registration failed")
	VerificationFailedError = NewSimple(http.StatusInternalServerError, "Verification failed")
	ResendFailedError       = NewSimple(http.StatusInternalServerError, "Failed to resend code")
	LoginFailedError        = NewSimple(http.StatusInternalServerError, "Login failed")

	/*
	 * Entries
	 */
	EntryNotFoundError     = NewSimple(http.StatusNotFound, "Entry not found")
	FetchEntriesError      = NewSimple(http.StatusInternalServerError, "Failed to fetch entries")
	FetchEntryError        = NewSimple(http.StatusInternalServerError, "Failed to fetch entry")
	CreateEntryFailedError = NewSimple(http.StatusInternalServerError, "Failed to create entry")
	UpdateEntryFailedError = NewSimple(http.StatusInternalServerError, "Failed to update entry")
	DeleteEntryFailedError = NewSimple(http.StatusInternalServerError, "Failed to delete entry")
	SearchFailedError      = NewSimple(http.StatusInternalServerError, "Search failed")

	/*
	 * Tags
	 */
	TagNotFoundError     = NewSimple(http.StatusNotFound, "Tag not found")
	TagExistsError       = NewSimple(http.StatusBadRequest, "Tag already exists")
	FetchTagsError       = NewSimple(http.StatusInternalServerError, "Failed to fetch tags")
	CreateTagFailedError = NewSimple(http.StatusInternalServerError, "Failed to create tag")
	UpdateTagFailedError = NewSimple(http.StatusInternalServerError, "Failed to update tag")
	DeleteTagFailedError = NewSimple(http.StatusInternalServerError, "Failed to delete tag")
)

// FromValidationError converts a validator.ValidationErrors into the
// field-specific message of the FIRST violation. Struct field declaration
// order is the message priority order, which validator preserves.
func FromValidationError(err error) *APIError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return InternalServerError
	}

	fe := ve[0]
	ns := fe.StructNamespace() // e.g. "RegisterRequest.Username"
	structName, _, _ := strings.Cut(ns, ".")
	field := strings.ToLower(fe.Field())

	switch structName {
	case "RegisterRequest":
		switch field {
		case "username":
			return NewSimple(http.StatusBadRequest, "Username must be at least 3 characters")
		case "email":
			return NewSimple(http.StatusBadRequest, "Valid email is required")
		case "password":
			return NewSimple(http.StatusBadRequest, "Password must be at least 8 characters")
		}

	case "VerifyEmailRequest":
		return NewSimple(http.StatusBadRequest, "Email and verification code required")

	case "ResendVerificationRequest":
		return NewSimple(http.StatusBadRequest, "Email required")

	case "LoginRequest":
		return NewSimple(http.StatusBadRequest, "Username and password required")

	case "CreateEntryRequest", "UpdateEntryRequest":
		switch field {
		case "title":
			return NewSimple(http.StatusBadRequest, "Title is required")
		case "content":
			return NewSimple(http.StatusBadRequest, "Content is required")
		case "tags":
			return NewSimple(http.StatusBadRequest, "Entry tags cannot contain duplicates")
		}

	case "SearchRequest":
		return NewSimple(http.StatusBadRequest, "Search query must be at least 2 characters")

	case "CreateTagRequest", "UpdateTagRequest":
		if fe.Tag() == "max" {
			return NewSimple(http.StatusBadRequest, "Tag name must be 50 characters or less")
		}
		return NewSimple(http.StatusBadRequest, "Tag name is required")
	}

	return NewSimple(http.StatusBadRequest, "Invalid value for field '%s'", field)
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Error: true, Status: status, Message: msg}
}
