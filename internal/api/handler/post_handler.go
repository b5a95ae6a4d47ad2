package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/middleware"
	"github.com/d60-Lab/social-feed/pkg/response"
)

type createPostRequest struct {
	Text string `json:"text"`
	Img  string `json:"img"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// CreatePost 发帖
// @Summary 发帖（文本/图片至少其一）
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Router /api/posts/create [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.postSvc.Create(c.Request.Context(), middleware.ActorID(c), req.Text, req.Img)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Created(c, post)
}

// DeletePost 删帖（仅作者本人）
// @Summary 删帖
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.postSvc.Delete(c.Request.Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, nil)
}

// CommentOnPost 评论
// @Summary 评论帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param id path string true "帖子ID"
// @Param request body commentRequest true "评论内容"
// @Success 200 {object} response.Response{data=model.Post}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/posts/comment/{id} [post]
func (h *Handler) CommentOnPost(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.engagementSvc.Comment(c.Request.Context(), middleware.ActorID(c), c.Param("id"), req.Text)
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, post)
}

// LikeUnlikePost 点赞/取消点赞
// @Summary 点赞切换，返回最新点赞者集合
// @Tags 帖子
// @Param id path string true "帖子ID"
// @Success 200 {object} response.Response{data=[]string}
// @Failure 404 {object} response.Response
// @Router /api/posts/like/{id} [post]
func (h *Handler) LikeUnlikePost(c *gin.Context) {
	likers, err := h.engagementSvc.LikeUnlike(c.Request.Context(), middleware.ActorID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, likers)
}

// AllPosts 全量 Feed
// @Summary 全部帖子（最新在前）
// @Tags Feed
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/posts/all [get]
func (h *Handler) AllPosts(c *gin.Context) {
	posts, err := h.feedSvc.All(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, posts)
}

// FollowingPosts 关注 Feed
// @Summary 我关注的人的帖子
// @Tags Feed
// @Success 200 {object} response.Response{data=[]model.Post}
// @Router /api/posts/following [get]
func (h *Handler) FollowingPosts(c *gin.Context) {
	posts, err := h.feedSvc.Following(c.Request.Context(), middleware.ActorID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, posts)
}

// LikedPosts 点赞 Feed
// @Summary 某用户点赞过的帖子
// @Tags Feed
// @Param id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 404 {object} response.Response
// @Router /api/posts/likes/{id} [get]
func (h *Handler) LikedPosts(c *gin.Context) {
	posts, err := h.feedSvc.Liked(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, posts)
}

// UserPosts 用户 Feed
// @Summary 某用户发过的帖子
// @Tags Feed
// @Param username path string true "用户名"
// @Success 200 {object} response.Response{data=[]model.Post}
// @Failure 404 {object} response.Response
// @Router /api/posts/user/{username} [get]
func (h *Handler) UserPosts(c *gin.Context) {
	posts, err := h.feedSvc.ByUser(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondErr(c, err)
		return
	}
	response.Success(c, posts)
}
