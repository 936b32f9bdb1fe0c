package service

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/internal/model"
	"github.com/maximiza-sistemas/edu-backend/internal/repository"
	apperrors "github.com/maximiza-sistemas/edu-backend/pkg/errors"
)

// ── user errors ──

var (
	ErrUserFieldsRequired = apperrors.BadRequest("Nome, email, senha e função são obrigatórios")
	ErrNoFieldsToUpdate   = apperrors.BadRequest("Nenhum campo para atualizar")
	ErrProfessorNotFound  = apperrors.BadRequest("Professor informado não existe")
)

const avatarBaseURL = "https://ui-avatars.com/api/"

// UserService user management.
type UserService interface {
	List(ctx context.Context, req *dto.UserListRequest) ([]model.User, int64, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id string) error
	ListByRole(ctx context.Context, role string) ([]model.User, error)
	ListStudentsByProfessor(ctx context.Context, professorID string) ([]model.User, error)
	// EnsureAdmin creates the admin account or resets its password and role.
	EnsureAdmin(ctx context.Context, name, email, password string) (user *model.User, created bool, err error)
}

type userService struct {
	repo       *repository.Repository
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, bcryptCost int, logger *zap.Logger) UserService {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// AvatarURL builds the generated avatar for a user.
func AvatarURL(name string, role model.Role) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return avatarBaseURL + "?name=" + escaped + "&background=" + role.AvatarColor() + "&color=fff"
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]model.User, int64, error) {
	users, total, err := s.repo.User.List(ctx, repository.UserFilter{
		Role:        req.Role,
		ProfessorID: req.ProfessorID,
		ClassGroup:  req.ClassGroup,
		Limit:       req.GetLimit(),
		Offset:      req.GetOffset(),
	})
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, 0, err
	}
	return nonNilUsers(users), total, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*model.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" || req.Role == "" {
		return nil, ErrUserFieldsRequired
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	professorID, err := s.resolveProfessor(ctx, "", req.ProfessorID)
	if err != nil {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	avatar := AvatarURL(name, req.Role)
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Avatar:       &avatar,
		ProfessorID:  professorID,
		ClassGroup:   emptyToNil(req.ClassGroup),
	}

	// email uniqueness is left to the unique index
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest) (*model.User, error) {
	if req.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		fields["email"] = strings.TrimSpace(*req.Email)
	}
	if req.Password != nil {
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		fields["role"] = string(*req.Role)
	}
	if req.Avatar != nil {
		fields["avatar"] = emptyToNil(req.Avatar)
	}
	if req.ProfessorID != nil {
		professorID, err := s.resolveProfessor(ctx, id, req.ProfessorID)
		if err != nil {
			return nil, err
		}
		fields["professor_id"] = professorID
	}
	if req.ClassGroup != nil {
		fields["class_group"] = emptyToNil(req.ClassGroup)
	}

	user, err := s.repo.User.Update(ctx, id, fields)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return user, nil
}

// ────────────────────── Delete ──────────────────────

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.repo.User.Delete(ctx, id); err != nil {
		return notFound(err, ErrUserNotFound)
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// ────────────────────── listings ──────────────────────

func (s *userService) ListByRole(ctx context.Context, role string) ([]model.User, error) {
	r, err := model.ParseRole(role)
	if err != nil {
		return nil, ErrInvalidRole
	}
	users, err := s.repo.User.ListByRole(ctx, r)
	if err != nil {
		return nil, err
	}
	return nonNilUsers(users), nil
}

func (s *userService) ListStudentsByProfessor(ctx context.Context, professorID string) ([]model.User, error) {
	users, err := s.repo.User.ListStudentsByProfessor(ctx, professorID)
	if err != nil {
		return nil, err
	}
	return nonNilUsers(users), nil
}

// ────────────────────── EnsureAdmin ──────────────────────

func (s *userService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.User, bool, error) {
	if email == "" || password == "" {
		return nil, false, ErrCredentialsRequired
	}
	hash, err := s.hash(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil && !isNotFound(err) {
		return nil, false, err
	}
	if existing != nil {
		user, err := s.repo.User.Update(ctx, existing.ID, map[string]interface{}{
			"password_hash": hash,
			"role":          string(model.RoleAdmin),
		})
		return user, false, err
	}

	avatar := AvatarURL(name, model.RoleAdmin)
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Avatar:       &avatar,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// ── helpers ──

func (s *userService) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return "", err
	}
	return string(b), nil
}

// resolveProfessor validates a professor reference. Nil or empty clears it.
func (s *userService) resolveProfessor(ctx context.Context, selfID string, professorID *string) (*string, error) {
	id := emptyToNil(professorID)
	if id == nil {
		return nil, nil
	}
	if *id == selfID {
		return nil, ErrProfessorNotFound
	}
	prof, err := s.repo.User.GetByID(ctx, *id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProfessorNotFound
		}
		return nil, err
	}
	if prof.Role != model.RoleProfessor {
		return nil, ErrProfessorNotFound
	}
	return id, nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func nonNilUsers(users []model.User) []model.User {
	if users == nil {
		return []model.User{}
	}
	return users
}
