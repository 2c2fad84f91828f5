package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expectedMsg string
	}{
		{
			name:        "ErrLowBalance",
			err:         ErrLowBalance,
			expectedMsg: "provider balance below configured threshold",
		},
		{
			name:        "ErrGateNotFound",
			err:         ErrGateNotFound,
			expectedMsg: "gate not found",
		},
		{
			name:        "ErrGateForbidden",
			err:         ErrGateForbidden,
			expectedMsg: "user is not authorized for this gate",
		},
		{
			name:        "ErrQuotaExceeded",
			err:         ErrQuotaExceeded,
			expectedMsg: "maximum failed attempts exceeded for this gate",
		},
		{
			name:        "ErrWrongPassword",
			err:         ErrWrongPassword,
			expectedMsg: "wrong gate password",
		},
		{
			name:        "ErrProviderFailure",
			err:         ErrProviderFailure,
			expectedMsg: "telephony provider failure",
		},
		{
			name:        "ErrStoreFailure",
			err:         ErrStoreFailure,
			expectedMsg: "persistent store failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expectedMsg {
				t.Errorf("message = %q, expected %q", tt.err.Error(), tt.expectedMsg)
			}
		})
	}
}

func TestMaintenanceError(t *testing.T) {
	err := &MaintenanceError{Message: "back at noon"}
	if err.Error() != "system is under maintenance: back at noon" {
		t.Errorf("unexpected message %q", err.Error())
	}

	empty := &MaintenanceError{}
	if empty.Error() != "system is under maintenance" {
		t.Errorf("unexpected message %q", empty.Error())
	}

	var target *MaintenanceError
	wrapped := fmt.Errorf("open rejected: %w", err)
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should unwrap MaintenanceError")
	}
	if target.Message != "back at noon" {
		t.Errorf("unwrapped message = %q", target.Message)
	}
}

func TestCooldownActiveError(t *testing.T) {
	err := &CooldownActiveError{RemainingSeconds: 17}
	if err.Error() != "gate cooldown active, 17 seconds remaining" {
		t.Errorf("unexpected message %q", err.Error())
	}

	var target *CooldownActiveError
	if !errors.As(error(err), &target) {
		t.Fatal("errors.As should match CooldownActiveError")
	}
	if target.RemainingSeconds != 17 {
		t.Errorf("remaining = %d, expected 17", target.RemainingSeconds)
	}
}

func TestErrorWrapping(t *testing.T) {
	wrapped := fmt.Errorf("%w: dial tcp: i/o timeout", ErrProviderFailure)
	if !errors.Is(wrapped, ErrProviderFailure) {
		t.Error("wrapped provider error should match ErrProviderFailure")
	}
	if errors.Is(wrapped, ErrStoreFailure) {
		t.Error("provider error must not match ErrStoreFailure")
	}
}
