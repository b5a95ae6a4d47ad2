package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/middleware"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

type updateProfileRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email" binding:"omitempty,email"`
	Username        string `json:"username" binding:"omitempty,handle"`
	Bio             string `json:"bio"`
	Link            string `json:"link" binding:"omitempty,url"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ProfileImg      string `json:"profileImg"`
	CoverImg        string `json:"coverImg"`
}

// UserProfile 公开资料
// @Summary 查用户公开资料（含两侧邻接）
// @Tags 用户
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=service.Profile}
// @Failure 404 {object} response.Response
// @Router /api/users/profile/{username} [get]
func (h *Handler) UserProfile(c *gin.Context) {
	profile, err := h.userSvc.Profile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, profile)
}

// FollowUnfollow 关注/取关切换
// @Summary 关注或取消关注
// @Tags 用户
// @Param id path string true "目标用户ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/users/follow/{id} [post]
func (h *Handler) FollowUnfollow(c *gin.Context) {
	following, err := h.engagementSvc.FollowUnfollow(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, gin.H{"following": following})
}

// SuggestedUsers 推荐用户
// @Summary 随机推荐最多 4 个未关注用户
// @Tags 用户
// @Success 200 {object} response.Response{data=[]model.User}
// @Router /api/users/suggested [get]
func (h *Handler) SuggestedUsers(c *gin.Context) {
	users, err := h.userSvc.Suggested(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, users)
}

// UpdateProfile 局部更新资料
// @Summary 更新资料（缺省字段保持原值）
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body updateProfileRequest true "资料"
// @Success 200 {object} response.Response{data=model.User}
// @Failure 400 {object} response.Response
// @Router /api/users/update [post]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.userSvc.Update(c.Request.Context(), middleware.ActorID(c), service.UpdateProfileInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Username:        req.Username,
		Bio:             req.Bio,
		Link:            req.Link,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ProfileImg:      req.ProfileImg,
		CoverImg:        req.CoverImg,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteMe 删号（显式清理所有引用）
// @Summary 删除当前账号
// @Tags 用户
// @Success 200 {object} response.Response
// @Router /api/users/me [delete]
func (h *Handler) DeleteMe(c *gin.Context) {
	if err := h.userSvc.Delete(c.Request.Context(), middleware.ActorID(c)); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}
