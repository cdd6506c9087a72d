package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"roomify/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "UnidentifiedCaller",
			failure: failure.UnidentifiedCaller,
			code:    http.StatusUnauthorized,
			message: "caller is not a known user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}

				return
			}

			f, ok := result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", result)
			}

			expectedF := tt.expected.(*failure.Failure)
			if f.Code != expectedF.Code || f.Message != expectedF.Message {
				t.Errorf("expected %+v, got %+v", expectedF, f)
			}
		})
	}
}

func TestInternalError(t *testing.T) {
	if failure.InternalError(nil) != nil {
		t.Error("expected nil for nil input")
	}

	result := failure.InternalError(errors.New("store unavailable"))
	if failure.GetCode(result) != http.StatusInternalServerError {
		t.Errorf("expected code %d, got %d", http.StatusInternalServerError, failure.GetCode(result))
	}
}

func TestConstructorCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		message  string
		validate func(error) bool
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("end must be after start"),
			code:     http.StatusBadRequest,
			message:  "end must be after start",
			validate: failure.IsValidation,
		},
		{
			name:    "unauthorized",
			err:     failure.Unauthorized("missing caller"),
			code:    http.StatusUnauthorized,
			message: "missing caller",
		},
		{
			name:     "not found",
			err:      failure.NotFound("booking not found"),
			code:     http.StatusNotFound,
			message:  "booking not found",
			validate: failure.IsNotFound,
		},
		{
			name:     "conflict",
			err:      failure.Conflict("room is not available"),
			code:     http.StatusConflict,
			message:  "room is not available",
			validate: failure.IsConflict,
		},
		{
			name:     "forbidden",
			err:      failure.Forbidden("students cannot approve"),
			code:     http.StatusForbidden,
			message:  "students cannot approve",
			validate: failure.IsForbidden,
		},
		{
			name:     "invalid transition",
			err:      failure.InvalidTransition("booking is not pending"),
			code:     http.StatusUnprocessableEntity,
			message:  "booking is not pending",
			validate: failure.IsInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if failure.GetCode(tt.err) != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, failure.GetCode(tt.err))
			}
			if tt.err.Error() != tt.message {
				t.Errorf("expected message to be %q, got %q", tt.message, tt.err.Error())
			}
			if tt.validate != nil && !tt.validate(tt.err) {
				t.Errorf("expected predicate to match %v", tt.err)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("failed to approve booking: %w", failure.InvalidTransition("test")),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestPredicatesOnNil(t *testing.T) {
	if failure.IsNotFound(nil) || failure.IsConflict(nil) || failure.IsValidation(nil) {
		t.Error("expected predicates to be false for nil")
	}
}

func TestGetMessage(t *testing.T) {
	wrapped := fmt.Errorf("failed to cancel booking: %w", failure.Forbidden("only the requester can cancel"))

	if got := failure.GetMessage(wrapped); got != "only the requester can cancel" {
		t.Errorf("expected innermost failure message, got %q", got)
	}

	if got := failure.GetMessage(errors.New("boom")); got != "boom" {
		t.Errorf("expected plain error text, got %q", got)
	}

	if !failure.IsFailure(wrapped) || failure.IsFailure(errors.New("boom")) {
		t.Error("IsFailure should only match errors carrying a Failure")
	}
}
