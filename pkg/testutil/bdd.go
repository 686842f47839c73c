package testutil

import "testing"

// Given, When, and Then keep scenario tests readable without pulling in a BDD
// framework. Recall lifecycle walkthroughs nest them to mirror the operator
// story: a recall is opened, verifiers vote, the owner disputes.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
