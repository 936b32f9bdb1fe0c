package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

func newTestBookService() (BookService, *mocks, *fakeFiles) {
	repo, m := newMockRepository()
	files := &fakeFiles{}
	return NewBookService(repo, files, zap.NewNop()), m, files
}

func bookType(t model.BookType) *model.BookType { return &t }

func TestBookCreate(t *testing.T) {
	svc, _, _ := newTestBookService()

	book, err := svc.Create(context.Background(), &dto.CreateBookRequest{
		Title:               " Álgebra Básica ",
		Author:              "Autor",
		CurriculumComponent: "matemática",
		ClassGroups:         []string{"7º Ano B", " 7º Ano A", "7º Ano B", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "Álgebra Básica", book.Title)
	assert.Equal(t, "Matemática", book.CurriculumComponent)
	assert.Equal(t, model.BookTypeStudent, book.BookType)
	assert.Equal(t, []string{"7º Ano A", "7º Ano B"}, []string(book.ClassGroups))
}

func TestBookCreate_Validation(t *testing.T) {
	svc, _, _ := newTestBookService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateBookRequest{Title: "T", CurriculumComponent: "Matemática"})
	assert.Equal(t, ErrBookFieldsRequired, err)

	_, err = svc.Create(ctx, &dto.CreateBookRequest{Title: "T", Author: "A", CurriculumComponent: "Astrologia"})
	assert.Equal(t, ErrUnknownComponent, err)
	assert.Equal(t, 400, ErrUnknownComponent.Status())
}

func TestBookCreate_NoTagsIsEmptyArray(t *testing.T) {
	svc, _, _ := newTestBookService()

	book, err := svc.Create(context.Background(), &dto.CreateBookRequest{Title: "T", Author: "A", CurriculumComponent: "Ciências"})
	require.NoError(t, err)
	assert.NotNil(t, book.ClassGroups)
	assert.Empty(t, book.ClassGroups)
}

func TestBookUpdate_ClassGroups(t *testing.T) {
	svc, _, _ := newTestBookService()
	ctx := context.Background()

	book, err := svc.Create(ctx, &dto.CreateBookRequest{
		Title: "T", Author: "A", CurriculumComponent: "Ciências", ClassGroups: []string{"6º Ano A"},
	})
	require.NoError(t, err)

	// absent class_groups leaves the tags alone
	kept, err := svc.Update(ctx, book.ID, &dto.UpdateBookRequest{Title: strPtr("T2")})
	require.NoError(t, err)
	assert.Equal(t, "T2", kept.Title)
	assert.Equal(t, []string{"6º Ano A"}, []string(kept.ClassGroups))

	// an empty array clears every tag
	cleared, err := svc.Update(ctx, book.ID, &dto.UpdateBookRequest{ClassGroups: &[]string{}})
	require.NoError(t, err)
	assert.NotNil(t, cleared.ClassGroups)
	assert.Empty(t, cleared.ClassGroups)
}

func TestBookUpdate_Errors(t *testing.T) {
	svc, _, _ := newTestBookService()
	ctx := context.Background()

	_, err := svc.Update(ctx, "missing", &dto.UpdateBookRequest{Title: strPtr("x")})
	assert.Equal(t, ErrBookNotFound, err)

	book, err := svc.Create(ctx, &dto.CreateBookRequest{Title: "T", Author: "A", CurriculumComponent: "Ciências"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, book.ID, &dto.UpdateBookRequest{Title: strPtr("  ")})
	assert.Equal(t, ErrBookFieldsRequired, err)

	_, err = svc.Update(ctx, book.ID, &dto.UpdateBookRequest{CurriculumComponent: strPtr("Astrologia")})
	assert.Equal(t, ErrUnknownComponent, err)
}

func TestBookUpdate_RemovesReplacedUploads(t *testing.T) {
	svc, _, files := newTestBookService()
	ctx := context.Background()

	book, err := svc.Create(ctx, &dto.CreateBookRequest{
		Title: "T", Author: "A", CurriculumComponent: "Ciências",
		CoverURL: "/uploads/images/cover-1.png", PdfURL: strPtr("/uploads/pdfs/pdf-1.pdf"),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, book.ID, &dto.UpdateBookRequest{CoverURL: strPtr("https://cdn.example.com/c.png")})
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/images/cover-1.png"}, files.deleted)

	_, err = svc.Update(ctx, book.ID, &dto.UpdateBookRequest{PdfURL: strPtr("/uploads/pdfs/pdf-1.pdf")})
	require.NoError(t, err)
	assert.Len(t, files.deleted, 1)
}

func TestBookDelete_RemovesLocalFiles(t *testing.T) {
	svc, _, files := newTestBookService()
	ctx := context.Background()

	book, err := svc.Create(ctx, &dto.CreateBookRequest{
		Title: "T", Author: "A", CurriculumComponent: "Ciências",
		CoverURL: "https://cdn.example.com/c.png", PdfURL: strPtr("/uploads/pdfs/pdf-1.pdf"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, book.ID))
	assert.Equal(t, []string{"/uploads/pdfs/pdf-1.pdf"}, files.deleted)
	assert.Equal(t, ErrBookNotFound, svc.Delete(ctx, book.ID))
}

func TestListForStudent(t *testing.T) {
	svc, m, _ := newTestBookService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateBookRequest{
		Title: "Aluno", Author: "A", CurriculumComponent: "Ciências", ClassGroups: []string{"7º Ano A"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateBookRequest{
		Title: "Manual do Professor", Author: "A", CurriculumComponent: "Ciências",
		BookType: bookType(model.BookTypeProfessor), ClassGroups: []string{"7º Ano A"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateBookRequest{
		Title: "Outra turma", Author: "A", CurriculumComponent: "Ciências", ClassGroups: []string{"8º Ano A"},
	})
	require.NoError(t, err)

	withClass := &model.User{Name: "S", Email: "s@x.com", Role: model.RoleStudent, ClassGroup: strPtr("7º Ano A")}
	require.NoError(t, m.users.Create(ctx, withClass))
	noClass := &model.User{Name: "N", Email: "n@x.com", Role: model.RoleStudent}
	require.NoError(t, m.users.Create(ctx, noClass))

	books, err := svc.ListForStudent(ctx, withClass.ID)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Aluno", books[0].Title)

	none, err := svc.ListForStudent(ctx, noClass.ID)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.ListForStudent(ctx, "missing")
	assert.Equal(t, ErrUserNotFound, err)
}

func TestBookCreate_InvalidBookType(t *testing.T) {
	svc, _, _ := newTestBookService()
	_, err := svc.Create(context.Background(), &dto.CreateBookRequest{
		Title: "T", Author: "A", CurriculumComponent: "Ciências", BookType: bookType("teacher"),
	})
	assert.Equal(t, ErrInvalidBookType, err)
}
