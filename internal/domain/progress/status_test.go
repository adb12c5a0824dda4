package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		viewed   int
		total    int
		approved bool
		want     Status
	}{
		{"no lessons viewed", 0, 5, false, StatusNotStarted},
		{"some lessons viewed", 2, 5, false, StatusInProgress},
		{"all but one viewed", 4, 5, false, StatusInProgress},
		{"all lessons viewed", 5, 5, false, StatusFinished},
		{"all viewed and approved", 5, 5, true, StatusApproved},
		{"partial view ignores approval", 2, 5, true, StatusInProgress},
		{"empty course", 0, 0, false, StatusFinished},
		{"empty course approved", 0, 0, true, StatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.viewed, tt.total, tt.approved))
		})
	}
}

func TestDerive_MonotonicInViews(t *testing.T) {
	// More viewings never move the status backwards.
	const total = 4
	prev := Derive(0, total, false)
	for viewed := 1; viewed <= total; viewed++ {
		cur := Derive(viewed, total, false)
		assert.GreaterOrEqual(t, cur.Rank(), prev.Rank(),
			"status regressed at viewed=%d", viewed)
		prev = cur
	}
}

func TestFullyViewed(t *testing.T) {
	assert.False(t, FullyViewed(0, 3))
	assert.False(t, FullyViewed(2, 3))
	assert.True(t, FullyViewed(3, 3))
	assert.True(t, FullyViewed(0, 0), "empty course counts as fully viewed")
}

func TestStatus_IsValid(t *testing.T) {
	for _, s := range []Status{StatusNotStarted, StatusInProgress, StatusFinished, StatusApproved} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("done").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatus_Rank(t *testing.T) {
	assert.Less(t, StatusNotStarted.Rank(), StatusInProgress.Rank())
	assert.Less(t, StatusInProgress.Rank(), StatusFinished.Rank())
	assert.Less(t, StatusFinished.Rank(), StatusApproved.Rank())
	assert.Equal(t, -1, Status("bogus").Rank())
}
