package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// Handler 聚合各业务 service
type Handler struct {
	engagementSvc   service.EngagementService
	feedSvc         service.FeedService
	postSvc         service.PostService
	userSvc         service.UserService
	notificationSvc service.NotificationService
}

func New(engagementSvc service.EngagementService, feedSvc service.FeedService, postSvc service.PostService, userSvc service.UserService, notificationSvc service.NotificationService) *Handler {
	return &Handler{
		engagementSvc:   engagementSvc,
		feedSvc:         feedSvc,
		postSvc:         postSvc,
		userSvc:         userSvc,
		notificationSvc: notificationSvc,
	}
}

// respondErr 领域错误 → HTTP 状态；其余一律 500 且不外泄细节
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrPostNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrFollowSelf),
		errors.Is(err, service.ErrEmptyComment),
		errors.Is(err, service.ErrEmptyPost),
		errors.Is(err, service.ErrPasswordPair),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrDuplicateAccount):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotPostOwner):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
