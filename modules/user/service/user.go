package service

import (
	"context"
	"fmt"

	"libreria/modules/user/dto"
	"libreria/modules/user/model"
	"libreria/modules/user/repository"
	"libreria/util/errs"
	"libreria/util/logger"
)

type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) ([]*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := model.NewUser(req.Name, req.Email)

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	if user == nil {
		return nil, errs.ResourceNotFoundError(fmt.Sprintf("Usuario no encontrado con ID: %d", id))
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(err.Error())
		return nil, err
	}
	return dto.NewUserResponses(users), nil
}
