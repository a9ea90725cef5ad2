package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"ticket-board-api/internal/client"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/response"
)

// UserService defines the interface for profile and notification settings
type UserService interface {
	GetMe(ctx context.Context) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	UpdateNotificationSettings(ctx context.Context, req *dto.UpdateNotificationSettingsRequest) (*dto.UserResponse, error)
	GetAvatarUploadURL(ctx context.Context, req *dto.AvatarPresignedURLRequest) (*dto.AvatarPresignedURLResponse, error)
}

// userServiceImpl is the implementation of UserService
type userServiceImpl struct {
	userRepo repository.UserRepository
	s3Client client.S3ClientInterface
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewUserService creates a new instance of UserService
func NewUserService(
	userRepo repository.UserRepository,
	s3Client client.S3ClientInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		s3Client: s3Client,
		metrics:  m,
		logger:   logger,
	}
}

// GetMe returns the caller's profile
func (s *userServiceImpl) GetMe(ctx context.Context) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateMe edits the caller's profile
func (s *userServiceImpl) UpdateMe(ctx context.Context, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to update user", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateNotificationSettings sets how many days before a ticket's expiry
// the caller is warned
func (s *userServiceImpl) UpdateNotificationSettings(ctx context.Context, req *dto.UpdateNotificationSettingsRequest) (*dto.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load user", err.Error())
	}

	user.NotifyDaysBefore = req.DaysBefore
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to update notification settings", err.Error())
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// GetAvatarUploadURL hands the client a presigned S3 URL to upload a new
// avatar to, plus the URL the avatar will be served from
func (s *userServiceImpl) GetAvatarUploadURL(ctx context.Context, req *dto.AvatarPresignedURLRequest) (*dto.AvatarPresignedURLResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if s.s3Client == nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Avatar storage is not configured", "")
	}

	start := time.Now()
	uploadURL, fileKey, err := s.s3Client.GeneratePresignedURL(ctx, userID, req.FileName, req.ContentType)
	s.metrics.RecordExternalAPICall("s3/presign", "PUT", statusFromErr(err), time.Since(start), err)
	if err != nil {
		s.logger.Error("Failed to presign avatar upload",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create upload URL", err.Error())
	}

	return &dto.AvatarPresignedURLResponse{
		UploadURL: uploadURL,
		FileURL:   s.s3Client.GetFileURL(fileKey),
	}, nil
}

func statusFromErr(err error) int {
	if err != nil {
		return 500
	}
	return 200
}
