package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
)

var ErrExportGenerateFail = apperrors.New(apperrors.KindInternal, "Falha ao gerar planilha")

// ExportService spreadsheet reports.
type ExportService interface {
	// ExportAssignments renders assignment progress as .xlsx, returning the content and a file name.
	ExportAssignments(ctx context.Context, req *dto.AssignmentExportRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var assignmentHeaders = []string{"Livro", "Autor", "Componente curricular", "Usuário", "Email", "Função", "Atribuído em", "Progresso (%)"}

const assignmentSheet = "Atribuições"

func (s *exportService) ExportAssignments(ctx context.Context, req *dto.AssignmentExportRequest) (*bytes.Buffer, string, error) {
	rows, err := s.repo.Assignment.ListForExport(ctx, repository.AssignmentFilter{
		BookID: req.BookID,
		UserID: req.UserID,
	})
	if err != nil {
		s.logger.Error("failed to load assignments for export", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(assignmentSheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3B82F6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range assignmentHeaders {
		f.SetCellValue(assignmentSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(assignmentSheet, "A1", cell(colName(len(assignmentHeaders)-1), 1), headerStyle)

	widths := []float64{36, 24, 22, 28, 30, 12, 18, 14}
	for i, w := range widths {
		col := colName(i)
		f.SetColWidth(assignmentSheet, col, col, w)
	}

	for i, r := range rows {
		row := i + 2
		values := []interface{}{
			deref(r.BookTitle),
			deref(r.BookAuthor),
			deref(r.CurriculumComponent),
			deref(r.UserName),
			deref(r.UserEmail),
			roleLabel(deref(r.UserRole)),
			r.AssignedAt.In(time.UTC).Format("2006-01-02 15:04"),
			r.Progress,
		}
		for c, v := range values {
			f.SetCellValue(assignmentSheet, cell(colName(c), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write spreadsheet", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("atribuicoes_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── helpers ──

func roleLabel(role string) string {
	switch model.Role(role) {
	case model.RoleAdmin:
		return "Administrador"
	case model.RoleProfessor:
		return "Professor"
	case model.RoleStudent:
		return "Aluno"
	}
	return role
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
