package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
)

func newUserService(t *testing.T, db *gorm.DB, storage *recordingStorage) (service.UserService, func()) {
	t.Helper()
	purger := service.NewMediaPurger(storage, 16)
	stop := purger.Start(1)
	svc := service.NewUserService(db,
		repository.NewUserRepository(db),
		repository.NewFollowRepository(db),
		repository.NewFanRepository(db),
		nil, // 无 redis：suggested 走 DB 随机采样
		storage,
		purger,
	)
	return svc, func() { _ = stop(context.Background()) }
}

func TestProfile(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	svc, cleanup := newUserService(t, db, &recordingStorage{})
	defer cleanup()
	ctx := context.Background()

	eng := newEngagement(db, defaultNotify())
	_, err := eng.FollowUnfollow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = eng.FollowUnfollow(ctx, alice.ID, carol.ID)
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, profile.ID)
	require.Empty(t, profile.Password)
	require.Equal(t, []string{bob.ID}, profile.Followers)
	require.Equal(t, []string{carol.ID}, profile.Following)

	_, err = svc.Profile(ctx, "ghost")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestSuggestedExcludesSelfAndFollowed(t *testing.T) {
	db := setupDB(t)
	me := seedUser(t, db, "me")
	followed := seedUser(t, db, "followed")
	for _, name := range []string{"u1", "u2", "u3", "u4", "u5", "u6"} {
		seedUser(t, db, name)
	}
	svc, cleanup := newUserService(t, db, &recordingStorage{})
	defer cleanup()
	ctx := context.Background()

	_, err := newEngagement(db, defaultNotify()).FollowUnfollow(ctx, me.ID, followed.ID)
	require.NoError(t, err)

	// 随机采样，多跑几轮验证不变式
	for i := 0; i < 10; i++ {
		suggested, err := svc.Suggested(ctx, me.ID)
		require.NoError(t, err)
		require.LessOrEqual(t, len(suggested), 4)
		for _, u := range suggested {
			require.NotEqual(t, me.ID, u.ID)
			require.NotEqual(t, followed.ID, u.ID)
			require.Empty(t, u.Password)
		}
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	svc, cleanup := newUserService(t, db, &recordingStorage{})
	defer cleanup()

	updated, err := svc.Update(context.Background(), alice.ID, service.UpdateProfileInput{Bio: "new bio"})
	require.NoError(t, err)
	require.Equal(t, "new bio", updated.Bio)
	// 其余字段保持原值
	require.Equal(t, alice.Username, updated.Username)
	require.Equal(t, alice.Email, updated.Email)
	require.Equal(t, alice.FullName, updated.FullName)
	require.Equal(t, alice.ProfileImg, updated.ProfileImg)
	require.Equal(t, alice.CoverImg, updated.CoverImg)

	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	require.Equal(t, "new bio", stored.Bio)
	require.NotEmpty(t, stored.Password)
}

func TestUpdatePasswordRules(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	svc, cleanup := newUserService(t, db, &recordingStorage{})
	defer cleanup()
	ctx := context.Background()

	_, err := svc.Update(ctx, alice.ID, service.UpdateProfileInput{NewPassword: "newsecret"})
	require.ErrorIs(t, err, service.ErrPasswordPair)

	_, err = svc.Update(ctx, alice.ID, service.UpdateProfileInput{CurrentPassword: "wrong", NewPassword: "newsecret"})
	require.ErrorIs(t, err, service.ErrPasswordMismatch)

	_, err = svc.Update(ctx, alice.ID, service.UpdateProfileInput{CurrentPassword: "password123", NewPassword: "short"})
	require.ErrorIs(t, err, service.ErrPasswordTooShort)

	_, err = svc.Update(ctx, alice.ID, service.UpdateProfileInput{CurrentPassword: "password123", NewPassword: "newsecret"})
	require.NoError(t, err)

	var stored model.User
	require.NoError(t, db.First(&stored, "id = ?", alice.ID).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")))
}

func TestUpdateImageReplacesAndPurges(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", alice.ID).
		Update("profile_img", "https://img.example.com/v1/old.png").Error)
	storage := &recordingStorage{}
	svc, cleanup := newUserService(t, db, storage)
	defer cleanup()

	updated, err := svc.Update(context.Background(), alice.ID, service.UpdateProfileInput{ProfileImg: "data:image/png;base64,yyyy"})
	require.NoError(t, err)
	require.NotEqual(t, "https://img.example.com/v1/old.png", updated.ProfileImg)
	require.Len(t, storage.Uploaded(), 1)
	require.Eventually(t, func() bool {
		destroyed := storage.Destroyed()
		return len(destroyed) == 1 && destroyed[0] == "https://img.example.com/v1/old.png"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestUpdateDuplicateUsername(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	svc, cleanup := newUserService(t, db, &recordingStorage{})
	defer cleanup()

	_, err := svc.Update(context.Background(), alice.ID, service.UpdateProfileInput{Username: "bob"})
	require.ErrorIs(t, err, service.ErrDuplicateAccount)
}

func TestDeleteUserCleansAllReferences(t *testing.T) {
	db := setupDB(t)
	victim := seedUser(t, db, "victim")
	other := seedUser(t, db, "other")
	svc, cleanup := newUserService(t, db, &recordingStorage{})
	defer cleanup()
	ctx := context.Background()

	eng := newEngagement(db, defaultNotify())
	victimPost := seedPost(t, db, victim.ID, "victim post", time.Now())
	otherPost := seedPost(t, db, other.ID, "other post", time.Now())

	_, err := eng.FollowUnfollow(ctx, victim.ID, other.ID)
	require.NoError(t, err)
	_, err = eng.FollowUnfollow(ctx, other.ID, victim.ID)
	require.NoError(t, err)
	_, err = eng.LikeUnlike(ctx, victim.ID, otherPost.ID)
	require.NoError(t, err)
	_, err = eng.LikeUnlike(ctx, other.ID, victimPost.ID)
	require.NoError(t, err)
	_, err = eng.Comment(ctx, victim.ID, otherPost.ID, "by victim")
	require.NoError(t, err)
	_, err = eng.Comment(ctx, other.ID, victimPost.ID, "on victim post")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, victim.ID))

	// 任何表里都不应再出现 victim 的 id
	require.EqualValues(t, 0, countRows(t, db, &model.User{}, "id = ?", victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Post{}, "author_id = ?", victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Comment{}, "user_id = ?", victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Comment{}, "post_id = ?", victimPost.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Like{}, "user_id = ?", victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Like{}, "post_id = ?", victimPost.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.LikedPost{}, "user_id = ?", victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.LikedPost{}, "post_id = ?", victimPost.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Follow{}, "follower_id = ? OR followee_id = ?", victim.ID, victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Fan{}, "user_id = ? OR fan_id = ?", victim.ID, victim.ID))
	require.EqualValues(t, 0, countRows(t, db, &model.Notification{}, "from_id = ? OR to_id = ?", victim.ID, victim.ID))

	// 旁人不受影响
	require.EqualValues(t, 1, countRows(t, db, &model.User{}, "id = ?", other.ID))
	require.EqualValues(t, 1, countRows(t, db, &model.Post{}, "id = ?", otherPost.ID))
}
