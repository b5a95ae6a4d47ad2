package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/service"
)

func TestAllPostsNewestFirst(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	base := time.Now().Add(-time.Hour)
	seedPost(t, db, alice.ID, "oldest", base)
	seedPost(t, db, alice.ID, "middle", base.Add(10*time.Minute))
	seedPost(t, db, alice.ID, "newest", base.Add(20*time.Minute))

	posts, err := newFeed(db).All(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "newest", posts[0].Text)
	require.Equal(t, "middle", posts[1].Text)
	require.Equal(t, "oldest", posts[2].Text)
	for i := 1; i < len(posts); i++ {
		require.False(t, posts[i].CreatedAt.After(posts[i-1].CreatedAt))
	}
}

func TestFeedProjectionExcludesPassword(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "hello", time.Now())

	_, err := newEngagement(db, defaultNotify()).Comment(context.Background(), bob.ID, post.ID, "hi")
	require.NoError(t, err)

	posts, err := newFeed(db).All(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].Author)
	require.Equal(t, "alice", posts[0].Author.Username)
	require.Empty(t, posts[0].Author.Password)
	require.Len(t, posts[0].Comments, 1)
	require.NotNil(t, posts[0].Comments[0].User)
	require.Empty(t, posts[0].Comments[0].User.Password)
}

func TestFollowingFeedIsSubsetOfAll(t *testing.T) {
	db := setupDB(t)
	me := seedUser(t, db, "me")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")
	base := time.Now().Add(-time.Hour)
	seedPost(t, db, followed.ID, "from followed", base.Add(time.Minute))
	seedPost(t, db, stranger.ID, "from stranger", base.Add(2*time.Minute))
	seedPost(t, db, me.ID, "mine", base.Add(3*time.Minute))

	ctx := context.Background()
	_, err := newEngagement(db, defaultNotify()).FollowUnfollow(ctx, me.ID, followed.ID)
	require.NoError(t, err)

	feed := newFeed(db)
	all, err := feed.All(ctx)
	require.NoError(t, err)
	following, err := feed.Following(ctx, me.ID)
	require.NoError(t, err)

	require.Len(t, following, 1)
	require.Equal(t, "from followed", following[0].Text)
	allIDs := make(map[string]struct{}, len(all))
	for _, p := range all {
		allIDs[p.ID] = struct{}{}
	}
	for _, p := range following {
		require.Contains(t, allIDs, p.ID)
		require.Equal(t, followed.ID, p.AuthorID)
	}
}

func TestFollowingFeedEmptyWhenNotFollowing(t *testing.T) {
	db := setupDB(t)
	me := seedUser(t, db, "me")
	other := seedUser(t, db, "other")
	seedPost(t, db, other.ID, "post", time.Now())

	following, err := newFeed(db).Following(context.Background(), me.ID)
	require.NoError(t, err)
	require.Empty(t, following)
}

func TestUserFeed(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	base := time.Now().Add(-time.Hour)
	seedPost(t, db, alice.ID, "a1", base)
	seedPost(t, db, alice.ID, "a2", base.Add(time.Minute))
	seedPost(t, db, bob.ID, "b1", base.Add(2*time.Minute))

	feed := newFeed(db)
	posts, err := feed.ByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "a2", posts[0].Text)
	require.Equal(t, "a1", posts[1].Text)

	_, err = feed.ByUser(context.Background(), "ghost")
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestLikedFeedMatchesLikedSet(t *testing.T) {
	db := setupDB(t)
	author := seedUser(t, db, "author")
	me := seedUser(t, db, "me")
	base := time.Now().Add(-time.Hour)
	p1 := seedPost(t, db, author.ID, "p1", base)
	seedPost(t, db, author.ID, "p2", base.Add(time.Minute))
	p3 := seedPost(t, db, author.ID, "p3", base.Add(2*time.Minute))

	ctx := context.Background()
	eng := newEngagement(db, defaultNotify())
	_, err := eng.LikeUnlike(ctx, me.ID, p1.ID)
	require.NoError(t, err)
	_, err = eng.LikeUnlike(ctx, me.ID, p3.ID)
	require.NoError(t, err)

	liked, err := newFeed(db).Liked(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, liked, 2)
	// 依然按时间倒序
	require.Equal(t, "p3", liked[0].Text)
	require.Equal(t, "p1", liked[1].Text)

	var likedIDs []string
	require.NoError(t, db.Model(&model.LikedPost{}).Where("user_id = ?", me.ID).Pluck("post_id", &likedIDs).Error)
	require.ElementsMatch(t, likedIDs, []string{liked[0].ID, liked[1].ID})
}
