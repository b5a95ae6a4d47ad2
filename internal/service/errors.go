package service

import "errors"

// 领域错误；handler 层负责映射到 HTTP 状态
var (
	ErrUserNotFound = errors.New("user not found")
	ErrPostNotFound = errors.New("post not found")

	ErrFollowSelf   = errors.New("cannot follow self")
	ErrEmptyComment = errors.New("comment text is required")
	ErrEmptyPost    = errors.New("post must have text or image")
	ErrNotPostOwner = errors.New("not the post owner")

	ErrPasswordPair     = errors.New("both current and new password are required")
	ErrPasswordMismatch = errors.New("current password is incorrect")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrDuplicateAccount = errors.New("username or email already taken")
)
