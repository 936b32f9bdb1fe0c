package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

func TestExportAssignments(t *testing.T) {
	repo, m := newMockRepository()
	svc := NewExportService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := m.assignments.Create(ctx, &model.BookAssignment{BookID: "book-1", UserID: "user-1"})
	require.NoError(t, err)
	for _, a := range m.assignments.items {
		a.Progress = 40
	}

	buf, filename, err := svc.ExportAssignments(ctx, &dto.AssignmentExportRequest{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "atribuicoes_"))
	assert.True(t, strings.HasSuffix(filename, ".xlsx"))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(assignmentSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, assignmentHeaders, rows[0])
	assert.Equal(t, "40", rows[1][len(rows[1])-1])
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Aluno", roleLabel("student"))
	assert.Equal(t, "Professor", roleLabel("professor"))
	assert.Equal(t, "Administrador", roleLabel("admin"))
	assert.Equal(t, "", roleLabel(""))
}
