package student

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(42, "Grace Hopper", "grace")
	require.NoError(t, err)

	assert.Equal(t, ID(42), s.ID)
	assert.False(t, s.Approved, "new students start unapproved")
}

func TestNew_Validation(t *testing.T) {
	_, err := New(-1, "Grace", "grace")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New(1000000, "Grace", "grace")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = New(42, "Grace", "with\ttab")
	assert.ErrorIs(t, err, ErrInvalidLogin)

	_, err = New(42, "", "grace")
	assert.ErrorIs(t, err, ErrInvalidDisplayName)
}

func TestMarkApproved(t *testing.T) {
	s, err := New(0, "Grace Hopper", "grace")
	require.NoError(t, err)

	s.MarkApproved()
	assert.True(t, s.Approved)
}
