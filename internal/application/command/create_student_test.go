package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curso-hub/curso-learning-hub/internal/domain/shared"
	"github.com/curso-hub/curso-learning-hub/internal/infrastructure/persistence/memory"
	"github.com/curso-hub/curso-learning-hub/pkg/idgen"
)

func TestCreateStudent_Success(t *testing.T) {
	repo := memory.NewStudentRepository()
	handler := NewCreateStudentHandler(repo, idgen.NewSeeded(1))

	result, err := handler.Handle(context.Background(), CreateStudentCommand{
		DisplayName: "Grace Hopper",
		Login:       "grace",
	})
	require.NoError(t, err)

	assert.True(t, result.Student.ID.IsValid())
	assert.False(t, result.Student.Approved, "new students start unapproved")

	stored, err := repo.GetByID(context.Background(), result.Student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", stored.DisplayName)
}

func TestCreateStudent_LoginTaken(t *testing.T) {
	repo := memory.NewStudentRepository()
	handler := NewCreateStudentHandler(repo, idgen.NewSeeded(1))

	_, err := handler.Handle(context.Background(), CreateStudentCommand{DisplayName: "Grace", Login: "grace"})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), CreateStudentCommand{DisplayName: "Other", Login: "grace"})
	assert.True(t, shared.IsConflict(err))
}
