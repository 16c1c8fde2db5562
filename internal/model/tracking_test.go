package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTrackingStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "IN_TRANSIT", "DELIVERED", "RETURNED"} {
		got, ok := ParseTrackingStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, TrackingStatus(s), got)
	}
	for _, s := range []string{"", "pending", "SHIPPED", "IN TRANSIT"} {
		_, ok := ParseTrackingStatus(s)
		assert.False(t, ok, s)
	}
}

func TestTrackingStatus_Next(t *testing.T) {
	next, ok := TrackingPending.Next()
	assert.True(t, ok)
	assert.Equal(t, TrackingInTransit, next)

	next, ok = TrackingInTransit.Next()
	assert.True(t, ok)
	assert.Equal(t, TrackingDelivered, next)

	next, ok = TrackingDelivered.Next()
	assert.True(t, ok)
	assert.Equal(t, TrackingReturned, next)

	_, ok = TrackingReturned.Next()
	assert.False(t, ok, "RETURNED is terminal")
}

func TestTrackingStatus_CanTransitionTo(t *testing.T) {
	all := []TrackingStatus{TrackingPending, TrackingInTransit, TrackingDelivered, TrackingReturned}

	cases := []struct {
		from, to TrackingStatus
		ok       bool
	}{
		{TrackingPending, TrackingInTransit, true},
		{TrackingInTransit, TrackingDelivered, true},
		{TrackingDelivered, TrackingReturned, true},
	}
	// Every pair other than the three legal ones must be rejected,
	// including stage skips, backward moves and self-transitions.
	for _, from := range all {
		for _, to := range all {
			legal := false
			for _, c := range cases {
				if c.from == from && c.to == to {
					legal = true
				}
			}
			assert.Equal(t, legal, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}
