package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/middleware"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// ListNotifications 我的通知（读取即已读）
// @Summary 通知列表
// @Tags 通知
// @Success 200 {object} response.Response{data=[]model.Notification}
// @Router /api/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	items, err := h.notificationSvc.List(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, items)
}

// ClearNotifications 清空我的通知
// @Summary 清空通知
// @Tags 通知
// @Success 200 {object} response.Response
// @Router /api/notifications [delete]
func (h *Handler) ClearNotifications(c *gin.Context) {
	if err := h.notificationSvc.Clear(c.Request.Context(), middleware.ActorID(c)); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}
