package domain

import "testing"

func TestAction_IsValid(t *testing.T) {
	for _, a := range Actions {
		if !a.IsValid() {
			t.Errorf("expected %s to be valid", a)
		}
	}

	invalid := []Action{"", "swap", "DEPOSIT", "withdraw"}
	for _, a := range invalid {
		if a.IsValid() {
			t.Errorf("expected %q to be invalid", a)
		}
	}
}

func TestActions_Complete(t *testing.T) {
	if len(Actions) != 5 {
		t.Errorf("expected 5 actions, got %d", len(Actions))
	}
}
