package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPremiumStatus_CanTransition(t *testing.T) {
	cases := []struct {
		from  PremiumStatus
		to    PremiumStatus
		actor PremiumActor
		want  bool
	}{
		{PremiumStatusNone, PremiumStatusPending, PremiumActorViewer, true},
		{PremiumStatusNone, PremiumStatusPremium, PremiumActorViewer, false},
		{PremiumStatusNone, PremiumStatusPremium, PremiumActorAdmin, false},
		{PremiumStatusPending, PremiumStatusPremium, PremiumActorAdmin, true},
		{PremiumStatusPending, PremiumStatusNone, PremiumActorAdmin, true},
		{PremiumStatusPending, PremiumStatusPremium, PremiumActorViewer, false},
		{PremiumStatusPremium, PremiumStatusNone, PremiumActorAdmin, false},
		{PremiumStatusPremium, PremiumStatusPending, PremiumActorViewer, false},
		{PremiumStatus("requested"), PremiumStatusPending, PremiumActorViewer, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransition(tc.to, tc.actor)
		assert.Equal(t, tc.want, got, "%s -> %s (actor %d)", tc.from, tc.to, tc.actor)
	}
}

func TestAccessStatus_IsTerminal(t *testing.T) {
	assert.False(t, AccessStatusPending.IsTerminal())
	assert.True(t, AccessStatusApproved.IsTerminal())
	assert.True(t, AccessStatusRejected.IsTerminal())
	assert.False(t, AccessStatus("requested").Valid())
}

func TestDivision_Valid(t *testing.T) {
	assert.True(t, DivisionSylhet.Valid())
	assert.False(t, Division("Kolkata").Valid())
}
