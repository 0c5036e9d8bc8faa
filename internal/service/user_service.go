package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kryptaroid/lms-career-shiksha/internal/model"
	"github.com/kryptaroid/lms-career-shiksha/internal/repository"
	"github.com/kryptaroid/lms-career-shiksha/internal/response"
)

// ErrNotEnrolled is returned when a learner touches a course outside
// their enrolments.
var ErrNotEnrolled = errors.New("not enrolled in this course")

// UserService handles account management and enrolments.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by e-mail address.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// List retrieves accounts with pagination for the admin panel.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	limit := perPage
	offset := (page - 1) * perPage

	users, total, err := s.userRepo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	if users == nil {
		users = []model.User{}
	}

	totalPages := (total + perPage - 1) / perPage

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}

	return users, pagination, nil
}

// Create registers a learner account with a hashed password.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNo:      req.PhoneNo,
		Address:      req.Address,
		PasswordHash: hash,
		Role:         model.RoleLearner,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update modifies an account. An empty password keeps the stored hash.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.PhoneNo = req.PhoneNo
	user.Address = req.Address

	hash := ""
	if req.Password != "" {
		hash, err = s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}
	user.PasswordHash = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.userRepo.Delete(ctx, id)
}

// Enrol attaches a learner to a course. Repeated enrolments are no-ops.
func (s *UserService) Enrol(ctx context.Context, userID int, courseID uuid.UUID) error {
	return s.userRepo.Enrol(ctx, userID, courseID)
}

// IsEnrolled reports whether a learner belongs to a course.
func (s *UserService) IsEnrolled(ctx context.Context, userID int, courseID uuid.UUID) (bool, error) {
	return s.userRepo.IsEnrolled(ctx, userID, courseID)
}

// GetProfile assembles the learner's profile with their enrolled courses.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*model.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	courses, err := s.userRepo.ListCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		PhoneNo: user.PhoneNo,
		Address: user.Address,
		Courses: courses,
	}, nil
}
