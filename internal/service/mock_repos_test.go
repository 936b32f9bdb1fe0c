package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	if user.ID == "" {
		m.seq++
		user.ID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "email":
			u.Email = v.(string)
		case "password_hash":
			u.PasswordHash = v.(string)
		case "role":
			u.Role = model.Role(v.(string))
		case "avatar":
			u.Avatar = v.(*string)
		case "professor_id":
			u.ProfessorID = v.(*string)
		case "class_group":
			u.ClassGroup = v.(*string)
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	for _, u := range m.users {
		if u.ProfessorID != nil && *u.ProfessorID == id {
			u.ProfessorID = nil
		}
	}
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if filter.Role != "" && string(u.Role) != filter.Role {
			continue
		}
		if filter.ProfessorID != "" && (u.ProfessorID == nil || *u.ProfessorID != filter.ProfessorID) {
			continue
		}
		if filter.ClassGroup != "" && (u.ClassGroup == nil || *u.ClassGroup != filter.ClassGroup) {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := int64(len(all))
	return page(all, filter.Limit, filter.Offset), total, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	users, _, err := m.List(ctx, repository.UserFilter{Role: string(role)})
	return users, err
}

func (m *mockUserRepo) ListStudentsByProfessor(ctx context.Context, professorID string) ([]model.User, error) {
	users, _, err := m.List(ctx, repository.UserFilter{Role: string(model.RoleStudent), ProfessorID: professorID})
	return users, err
}

// ── Mock BookRepository ──

type mockBookRepo struct {
	books map[string]*model.Book
	seq   int
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: make(map[string]*model.Book)}
}

func (m *mockBookRepo) Create(_ context.Context, book *model.Book, classGroups []string) (*model.Book, error) {
	m.seq++
	book.ID = fmt.Sprintf("book-%d", m.seq)
	if book.BookType == "" {
		book.BookType = model.BookTypeStudent
	}
	if len(classGroups) > 0 {
		book.ClassGroups = append([]string(nil), classGroups...)
	}
	cp := *book
	m.books[book.ID] = &cp
	out := cp
	return &out, nil
}

func (m *mockBookRepo) GetByID(_ context.Context, id string) (*model.Book, error) {
	if b, ok := m.books[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookRepo) Update(_ context.Context, id string, fields map[string]interface{}, classGroups *[]string) (*model.Book, error) {
	b, ok := m.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			b.Title = v.(string)
		case "author":
			b.Author = v.(string)
		case "description":
			b.Description = v.(string)
		case "cover_url":
			b.CoverURL = v.(string)
		case "pdf_url":
			b.PdfURL = v.(*string)
		case "curriculum_component":
			b.CurriculumComponent = v.(string)
		case "book_type":
			b.BookType = model.BookType(v.(string))
		}
	}
	if classGroups != nil {
		if len(*classGroups) == 0 {
			b.ClassGroups = nil
		} else {
			b.ClassGroups = append([]string(nil), (*classGroups)...)
		}
	}
	cp := *b
	return &cp, nil
}

func (m *mockBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.books[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *mockBookRepo) filter(keep func(b *model.Book) bool) []model.Book {
	var out []model.Book
	for _, b := range m.books {
		if keep(b) {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (m *mockBookRepo) List(_ context.Context, filter repository.BookFilter) ([]model.Book, int64, error) {
	all := m.filter(func(b *model.Book) bool {
		if filter.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Search)) {
			return false
		}
		if filter.CurriculumComponent != "" && filter.CurriculumComponent != "all" && b.CurriculumComponent != filter.CurriculumComponent {
			return false
		}
		return true
	})
	return page(all, filter.Limit, filter.Offset), int64(len(all)), nil
}

func (m *mockBookRepo) ListByComponent(_ context.Context, component string) ([]model.Book, error) {
	return m.filter(func(b *model.Book) bool { return b.CurriculumComponent == component }), nil
}

func (m *mockBookRepo) ListByClass(_ context.Context, classGroup string) ([]model.Book, error) {
	return m.filter(func(b *model.Book) bool { return hasTag(b, classGroup) }), nil
}

func (m *mockBookRepo) ListForStudentClass(_ context.Context, classGroup string) ([]model.Book, error) {
	return m.filter(func(b *model.Book) bool {
		return b.BookType == model.BookTypeStudent && hasTag(b, classGroup)
	}), nil
}

func (m *mockBookRepo) CountByComponent(_ context.Context, component string) (int64, error) {
	return int64(len(m.filter(func(b *model.Book) bool { return b.CurriculumComponent == component }))), nil
}

func (m *mockBookRepo) ListFileURLs(_ context.Context) ([]string, error) {
	var urls []string
	for _, b := range m.books {
		if b.CoverURL != "" {
			urls = append(urls, b.CoverURL)
		}
		if b.PdfURL != nil {
			urls = append(urls, *b.PdfURL)
		}
	}
	return urls, nil
}

func hasTag(b *model.Book, tag string) bool {
	for _, g := range b.ClassGroups {
		if g == tag {
			return true
		}
	}
	return false
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	items map[string]*model.BookAssignment
	seq   int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{items: make(map[string]*model.BookAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.BookAssignment) (bool, error) {
	for _, existing := range m.items {
		if existing.BookID == a.BookID && existing.UserID == a.UserID {
			return false, nil
		}
	}
	m.seq++
	a.ID = fmt.Sprintf("assignment-%d", m.seq)
	a.AssignedAt = time.Now()
	cp := *a
	m.items[a.ID] = &cp
	return true, nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.AssignmentDetail, error) {
	if a, ok := m.items[id]; ok {
		return &model.AssignmentDetail{BookAssignment: *a}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) match(filter repository.AssignmentFilter) []model.AssignmentDetail {
	var out []model.AssignmentDetail
	for _, a := range m.items {
		if filter.BookID != "" && a.BookID != filter.BookID {
			continue
		}
		if filter.UserID != "" && a.UserID != filter.UserID {
			continue
		}
		out = append(out, model.AssignmentDetail{BookAssignment: *a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockAssignmentRepo) List(_ context.Context, filter repository.AssignmentFilter) ([]model.AssignmentDetail, int64, error) {
	all := m.match(filter)
	return page(all, filter.Limit, filter.Offset), int64(len(all)), nil
}

func (m *mockAssignmentRepo) ListByUser(_ context.Context, userID string) ([]model.AssignmentDetail, error) {
	return m.match(repository.AssignmentFilter{UserID: userID}), nil
}

func (m *mockAssignmentRepo) ListByBook(_ context.Context, bookID string) ([]model.AssignmentDetail, error) {
	return m.match(repository.AssignmentFilter{BookID: bookID}), nil
}

func (m *mockAssignmentRepo) ListForExport(_ context.Context, filter repository.AssignmentFilter) ([]model.AssignmentDetail, error) {
	return m.match(filter), nil
}

func (m *mockAssignmentRepo) UpdateProgress(_ context.Context, id string, progress int) (*model.BookAssignment, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	a.Progress = progress
	cp := *a
	return &cp, nil
}

func (m *mockAssignmentRepo) UpdateProgressByPair(_ context.Context, bookID, userID string, progress int) (*model.BookAssignment, error) {
	for _, a := range m.items {
		if a.BookID == bookID && a.UserID == userID {
			a.Progress = progress
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockAssignmentRepo) DeleteByPair(_ context.Context, bookID, userID string) error {
	for id, a := range m.items {
		if a.BookID == bookID && a.UserID == userID {
			delete(m.items, id)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock lookup repositories ──

type mockComponentRepo struct {
	items map[string]*model.CurriculumComponent
	seq   int
}

func newMockComponentRepo(names ...string) *mockComponentRepo {
	m := &mockComponentRepo{items: make(map[string]*model.CurriculumComponent)}
	for _, n := range names {
		_ = m.Create(context.Background(), &model.CurriculumComponent{Name: n})
	}
	return m
}

func (m *mockComponentRepo) Create(_ context.Context, c *model.CurriculumComponent) error {
	m.seq++
	c.ID = fmt.Sprintf("component-%d", m.seq)
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *mockComponentRepo) GetByID(_ context.Context, id string) (*model.CurriculumComponent, error) {
	if c, ok := m.items[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComponentRepo) FindByName(_ context.Context, name string) (*model.CurriculumComponent, error) {
	for _, c := range m.items {
		if strings.EqualFold(c.Name, name) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComponentRepo) Rename(_ context.Context, id, name string) (*model.CurriculumComponent, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.Name = name
	cp := *c
	return &cp, nil
}

func (m *mockComponentRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockComponentRepo) List(_ context.Context) ([]model.CurriculumComponent, error) {
	var out []model.CurriculumComponent
	for _, c := range m.items {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type mockSeriesRepo struct {
	items map[string]*model.Series
	seq   int
}

func newMockSeriesRepo() *mockSeriesRepo {
	return &mockSeriesRepo{items: make(map[string]*model.Series)}
}

func (m *mockSeriesRepo) Create(_ context.Context, s *model.Series) error {
	m.seq++
	s.ID = fmt.Sprintf("series-%d", m.seq)
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *mockSeriesRepo) GetByID(_ context.Context, id string) (*model.Series, error) {
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeriesRepo) FindByName(_ context.Context, name string) (*model.Series, error) {
	for _, s := range m.items {
		if strings.EqualFold(s.Name, name) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeriesRepo) Rename(_ context.Context, id, name string) (*model.Series, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	s.Name = name
	cp := *s
	return &cp, nil
}

func (m *mockSeriesRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockSeriesRepo) List(_ context.Context) ([]model.Series, error) {
	var out []model.Series
	for _, s := range m.items {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── helpers ──

type mocks struct {
	users       *mockUserRepo
	books       *mockBookRepo
	assignments *mockAssignmentRepo
	components  *mockComponentRepo
	series      *mockSeriesRepo
}

func newMockRepository() (*repository.Repository, *mocks) {
	m := &mocks{
		users:       newMockUserRepo(),
		books:       newMockBookRepo(),
		assignments: newMockAssignmentRepo(),
		components:  newMockComponentRepo("Matemática", "Língua Portuguesa", "Ciências"),
		series:      newMockSeriesRepo(),
	}
	return &repository.Repository{
		User:                m.users,
		Book:                m.books,
		Assignment:          m.assignments,
		CurriculumComponent: m.components,
		Series:              m.series,
	}, m
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// fakeFiles records deletions; URLs under /uploads/ are local.
type fakeFiles struct {
	deleted []string
}

func (f *fakeFiles) Delete(url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeFiles) IsLocal(url string) bool {
	return strings.HasPrefix(url, "/uploads/")
}
