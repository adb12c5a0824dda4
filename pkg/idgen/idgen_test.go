package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfessorID_Range(t *testing.T) {
	a := NewSeeded(1)
	for i := 0; i < 10000; i++ {
		id := a.ProfessorID()
		assert.GreaterOrEqual(t, id, int64(ProfessorMin))
		assert.LessOrEqual(t, id, int64(ProfessorMax))
	}
}

func TestStudentID_Range(t *testing.T) {
	a := NewSeeded(1)
	for i := 0; i < 10000; i++ {
		id := a.StudentID()
		assert.GreaterOrEqual(t, id, int64(StudentMin))
		assert.LessOrEqual(t, id, int64(StudentMax))
	}
}

func TestNewSeeded_Deterministic(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.ProfessorID(), b.ProfessorID())
		assert.Equal(t, a.StudentID(), b.StudentID())
	}
}
