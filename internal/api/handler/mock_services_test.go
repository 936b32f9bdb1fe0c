package handler

import (
	"bytes"
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/service"
	"github.com/maximiza-sistemas/edu-backend/pkg/storage"
)

// ── Mock AuthService ──

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*dto.LoginResponse)
	return resp, args.Error(1)
}

func (m *mockAuthService) Me(_ context.Context, userID string) (*model.User, error) {
	args := m.Called(userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

// ── Mock UserService ──

type mockUserService struct{ mock.Mock }

func (m *mockUserService) List(_ context.Context, req *dto.UserListRequest) ([]model.User, int64, error) {
	args := m.Called(req)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserService) GetByID(_ context.Context, id string) (*model.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) Create(_ context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	args := m.Called(req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) Update(_ context.Context, id string, req *dto.UpdateUserRequest) (*model.User, error) {
	args := m.Called(id, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserService) Delete(_ context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockUserService) ListByRole(_ context.Context, role string) ([]model.User, error) {
	args := m.Called(role)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserService) ListStudentsByProfessor(_ context.Context, professorID string) ([]model.User, error) {
	args := m.Called(professorID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserService) EnsureAdmin(_ context.Context, name, email, password string) (*model.User, bool, error) {
	args := m.Called(name, email, password)
	u, _ := args.Get(0).(*model.User)
	return u, args.Bool(1), args.Error(2)
}

// ── Mock BookService ──

type mockBookService struct{ mock.Mock }

func (m *mockBookService) List(_ context.Context, req *dto.BookListRequest) ([]model.Book, int64, error) {
	args := m.Called(req)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookService) GetByID(_ context.Context, id string) (*model.Book, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockBookService) Create(_ context.Context, req *dto.CreateBookRequest) (*model.Book, error) {
	args := m.Called(req)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockBookService) Update(_ context.Context, id string, req *dto.UpdateBookRequest) (*model.Book, error) {
	args := m.Called(id, req)
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockBookService) Delete(_ context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockBookService) ListByComponent(_ context.Context, component string) ([]model.Book, error) {
	args := m.Called(component)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *mockBookService) ListByClass(_ context.Context, classGroup string) ([]model.Book, error) {
	args := m.Called(classGroup)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

func (m *mockBookService) ListForStudent(_ context.Context, userID string) ([]model.Book, error) {
	args := m.Called(userID)
	books, _ := args.Get(0).([]model.Book)
	return books, args.Error(1)
}

// ── Mock AssignmentService ──

type mockAssignmentService struct{ mock.Mock }

func (m *mockAssignmentService) List(_ context.Context, req *dto.AssignmentListRequest) ([]model.AssignmentDetail, int64, error) {
	args := m.Called(req)
	rows, _ := args.Get(0).([]model.AssignmentDetail)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *mockAssignmentService) GetByID(_ context.Context, id string) (*model.AssignmentDetail, error) {
	args := m.Called(id)
	a, _ := args.Get(0).(*model.AssignmentDetail)
	return a, args.Error(1)
}

func (m *mockAssignmentService) ListByUser(_ context.Context, userID string) ([]model.AssignmentDetail, error) {
	args := m.Called(userID)
	rows, _ := args.Get(0).([]model.AssignmentDetail)
	return rows, args.Error(1)
}

func (m *mockAssignmentService) ListByBook(_ context.Context, bookID string) ([]model.AssignmentDetail, error) {
	args := m.Called(bookID)
	rows, _ := args.Get(0).([]model.AssignmentDetail)
	return rows, args.Error(1)
}

func (m *mockAssignmentService) Create(_ context.Context, req *dto.CreateAssignmentRequest) (*model.BookAssignment, error) {
	args := m.Called(req)
	a, _ := args.Get(0).(*model.BookAssignment)
	return a, args.Error(1)
}

func (m *mockAssignmentService) UpdateProgress(_ context.Context, id string, progress *int) (*model.BookAssignment, error) {
	args := m.Called(id, progress)
	a, _ := args.Get(0).(*model.BookAssignment)
	return a, args.Error(1)
}

func (m *mockAssignmentService) UpdateProgressByPair(_ context.Context, bookID, userID string, progress *int) (*model.BookAssignment, error) {
	args := m.Called(bookID, userID, progress)
	a, _ := args.Get(0).(*model.BookAssignment)
	return a, args.Error(1)
}

func (m *mockAssignmentService) Delete(_ context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *mockAssignmentService) DeleteByPair(_ context.Context, bookID, userID string) error {
	return m.Called(bookID, userID).Error(0)
}

// ── Mock UploadService ──

type mockUploadService struct{ mock.Mock }

func (m *mockUploadService) Upload(_ context.Context, kind storage.Kind, file *service.UploadFile) (*dto.UploadResponse, error) {
	args := m.Called(kind, file)
	resp, _ := args.Get(0).(*dto.UploadResponse)
	return resp, args.Error(1)
}

// ── Mock ExportService ──

type mockExportService struct{ mock.Mock }

func (m *mockExportService) ExportAssignments(_ context.Context, req *dto.AssignmentExportRequest) (*bytes.Buffer, string, error) {
	args := m.Called(req)
	buf, _ := args.Get(0).(*bytes.Buffer)
	return buf, args.String(1), args.Error(2)
}
