package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/internal/media"
	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/database"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	followRepo := repository.NewFollowRepository(db)

	purger := service.NewMediaPurger(media.Noop{}, 1024)
	stopPurger := purger.Start(1)
	engagementSvc := service.NewEngagementService(db, userRepo, postRepo, likeRepo, cfg.Notify)
	feedSvc := service.NewFeedService(postRepo, userRepo, followRepo, likeRepo)
	postSvc := service.NewPostService(db, userRepo, postRepo, media.Noop{}, purger)

	ctx := context.Background()

	USERS := envInt("USERS", 1000)
	POSTS := envInt("POSTS", 5000)
	OPS := envInt("OPS", 10000)
	CONC := envInt("CONC", 4)

	// seed users
	users := make([]model.User, USERS)
	for i := range users {
		id := uuid.New().String()
		users[i] = model.User{ID: id, Username: "u" + id[:8], Email: id[:8] + "@example.com", Password: "p"}
	}
	for i := 0; i < USERS; i += 500 {
		end := i + 500
		if end > USERS {
			end = USERS
		}
		sub := users[i:end]
		_ = db.Create(&sub).Error
	}

	// seed posts + a follow graph (everyone follows u[0])
	postIDs := make([]string, 0, POSTS)
	for i := 0; i < POSTS; i++ {
		p := must(postSvc.Create(ctx, users[rand.Intn(USERS)].ID, fmt.Sprintf("post %d", i), ""))
		postIDs = append(postIDs, p.ID)
	}
	for i := 1; i < USERS; i++ {
		_, _ = engagementSvc.FollowUnfollow(ctx, users[i].ID, users[0].ID)
	}

	// like toggles with CONC workers
	recs := make([]time.Duration, 0, OPS)
	recCh := make(chan time.Duration, OPS)
	feed := make(chan int, OPS)
	for i := 0; i < OPS; i++ {
		feed <- i
	}
	close(feed)
	done := make(chan struct{}, CONC)
	t0 := time.Now()
	for w := 0; w < CONC; w++ {
		go func() {
			for range feed {
				actor := users[rand.Intn(USERS)].ID
				post := postIDs[rand.Intn(len(postIDs))]
				st := time.Now()
				_, _ = engagementSvc.LikeUnlike(ctx, actor, post)
				recCh <- time.Since(st)
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < CONC; w++ {
		<-done
	}
	close(recCh)
	for d := range recCh {
		recs = append(recs, d)
	}
	toggleDur := time.Since(t0)

	// feed queries
	q0 := time.Now()
	all := must(feedSvc.All(ctx))
	allDur := time.Since(q0)

	q1 := time.Now()
	followingFeed := must(feedSvc.Following(ctx, users[1].ID))
	follDur := time.Since(q1)

	q2 := time.Now()
	likedFeed := must(feedSvc.Liked(ctx, users[0].ID))
	likedDur := time.Since(q2)

	_ = stopPurger(ctx)

	fmt.Printf("USERS=%d, POSTS=%d, OPS=%d, CONC=%d\n", USERS, POSTS, OPS, CONC)
	fmt.Printf("Like toggle total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		toggleDur, toggleDur/time.Duration(OPS), pct(recs, 0.50), pct(recs, 0.95), pct(recs, 0.99))
	fmt.Printf("Feed all: %d posts in %v\n", len(all), allDur)
	fmt.Printf("Feed following: %d posts in %v\n", len(followingFeed), follDur)
	fmt.Printf("Feed liked: %d posts in %v\n", len(likedFeed), likedDur)
}
