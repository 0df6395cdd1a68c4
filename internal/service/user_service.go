package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eduboard/internal/dto"
	"eduboard/internal/model"
	"eduboard/internal/repository"
)

// UserService 用户业务接口
type UserService interface {
	GetByID(ctx context.Context, id uint) (*dto.UserResponse, error)
	// UpdateProfile 更新个人资料：仅覆盖请求中提供的字段
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = req.PhoneNumber
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户资料失败", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ── 内部辅助方法 ──

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Role:        user.Role,
		FullName:    user.FullName,
		Avatar:      user.Avatar,
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
	}
}

func toUserBrief(user *model.User) *dto.UserBrief {
	if user == nil {
		return nil
	}
	return &dto.UserBrief{
		ID:       user.ID,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}
