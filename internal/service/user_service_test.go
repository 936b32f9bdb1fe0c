package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
)

func newTestUserService() (UserService, *mocks) {
	repo, m := newMockRepository()
	return NewUserService(repo, bcrypt.MinCost, zap.NewNop()), m
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t,
		"https://ui-avatars.com/api/?name=Maria%20Silva&background=3b82f6&color=fff",
		AvatarURL("Maria Silva", model.RoleProfessor))
	assert.Equal(t,
		"https://ui-avatars.com/api/?name=Admin&background=ef4444&color=fff",
		AvatarURL("Admin", model.RoleAdmin))
	assert.Contains(t, AvatarURL("João", model.RoleStudent), "background=22c55e")
}

func TestUserCreate(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Create(ctx, &dto.CreateUserRequest{
		Name: "Maria Silva", Email: "maria@escola.com", Password: "pw123456", Role: model.RoleStudent,
		ClassGroup: strPtr("7º Ano A"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	require.NotNil(t, user.Avatar)
	assert.Contains(t, *user.Avatar, "name=Maria%20Silva")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))
	require.NotNil(t, user.ClassGroup)
	assert.Equal(t, "7º Ano A", *user.ClassGroup)
}

func TestUserCreate_Validation(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.Create(ctx, &dto.CreateUserRequest{Name: "X", Email: "x@x.com", Role: model.RoleStudent})
	assert.Equal(t, ErrUserFieldsRequired, err)

	_, err = svc.Create(ctx, &dto.CreateUserRequest{Name: "X", Email: "x@x.com", Password: "p", Role: "teacher"})
	assert.Equal(t, ErrInvalidRole, err)
}

func TestUserCreate_ProfessorMustBeProfessor(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	student, err := svc.Create(ctx, &dto.CreateUserRequest{Name: "A", Email: "a@x.com", Password: "p", Role: model.RoleStudent})
	require.NoError(t, err)
	prof, err := svc.Create(ctx, &dto.CreateUserRequest{Name: "P", Email: "p@x.com", Password: "p", Role: model.RoleProfessor})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &dto.CreateUserRequest{
		Name: "B", Email: "b@x.com", Password: "p", Role: model.RoleStudent, ProfessorID: &student.ID,
	})
	assert.Equal(t, ErrProfessorNotFound, err)

	_, err = svc.Create(ctx, &dto.CreateUserRequest{
		Name: "C", Email: "c@x.com", Password: "p", Role: model.RoleStudent, ProfessorID: strPtr("missing"),
	})
	assert.Equal(t, ErrProfessorNotFound, err)

	linked, err := svc.Create(ctx, &dto.CreateUserRequest{
		Name: "D", Email: "d@x.com", Password: "p", Role: model.RoleStudent, ProfessorID: &prof.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, linked.ProfessorID)
	assert.Equal(t, prof.ID, *linked.ProfessorID)

	students, err := svc.ListStudentsByProfessor(ctx, prof.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "D", students[0].Name)
}

func TestUserUpdate(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	prof, err := svc.Create(ctx, &dto.CreateUserRequest{Name: "P", Email: "p@x.com", Password: "p", Role: model.RoleProfessor})
	require.NoError(t, err)
	student, err := svc.Create(ctx, &dto.CreateUserRequest{
		Name: "S", Email: "s@x.com", Password: "p", Role: model.RoleStudent, ProfessorID: &prof.ID,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, student.ID, &dto.UpdateUserRequest{})
	assert.Equal(t, ErrNoFieldsToUpdate, err)

	updated, err := svc.Update(ctx, student.ID, &dto.UpdateUserRequest{Name: strPtr(" Sofia "), ProfessorID: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Sofia", updated.Name)
	assert.Nil(t, updated.ProfessorID)

	_, err = svc.Update(ctx, prof.ID, &dto.UpdateUserRequest{ProfessorID: &prof.ID})
	assert.Equal(t, ErrProfessorNotFound, err)

	_, err = svc.Update(ctx, "missing", &dto.UpdateUserRequest{Name: strPtr("x")})
	assert.Equal(t, ErrUserNotFound, err)
}

func TestUserDelete(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	u, err := svc.Create(ctx, &dto.CreateUserRequest{Name: "S", Email: "s@x.com", Password: "p", Role: model.RoleStudent})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	assert.Equal(t, ErrUserNotFound, svc.Delete(ctx, u.ID))
}

func TestListByRole(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()

	_, err := svc.ListByRole(ctx, "teacher")
	assert.Equal(t, ErrInvalidRole, err)

	users, err := svc.ListByRole(ctx, "admin")
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestUserList_Pagination(t *testing.T) {
	svc, _ := newTestUserService()
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		_, err := svc.Create(ctx, &dto.CreateUserRequest{Name: n, Email: n + "@x.com", Password: "p", Role: model.RoleStudent})
		require.NoError(t, err)
	}

	users, total, err := svc.List(ctx, &dto.UserListRequest{PaginationRequest: dto.PaginationRequest{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "b", users[0].Name)
}

func TestEnsureAdmin(t *testing.T) {
	svc, m := newTestUserService()
	ctx := context.Background()

	user, created, err := svc.EnsureAdmin(ctx, "Administrador", "admin@maxieducacao.com", "admin123")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.RoleAdmin, user.Role)

	m.users.users[user.ID].Role = model.RoleStudent

	again, created, err := svc.EnsureAdmin(ctx, "Administrador", "admin@maxieducacao.com", "novaSenha")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, model.RoleAdmin, again.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(again.PasswordHash), []byte("novaSenha")))
}
