package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/api"
	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/config"
	"github.com/jengzang/studyspots-backend-go/internal/database"
	"github.com/jengzang/studyspots-backend-go/internal/kvstore"
	"github.com/jengzang/studyspots-backend-go/internal/middleware"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

const testSecret = "client-test-secret"

func newTestServer(t *testing.T) string {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Driver: "sqlite", Path: ":memory:"})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := &config.Config{DefaultPageSize: 50, MaxPageSize: 100, CacheTTL: time.Minute, ReviewRateLimit: 100}
	limiter := middleware.NewRateLimiter(cfg.ReviewRateLimit, time.Minute)
	t.Cleanup(limiter.Stop)

	r := api.SetupRouter(cfg, api.Deps{
		DB:       db,
		Cache:    kvstore.NewMemory(32),
		Verifier: auth.NewJWTVerifier(testSecret),
		Logger:   zap.NewNop(),
		Limiter:  limiter,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/v1/init-spots", "application/json", nil)
	if err != nil {
		t.Fatalf("init-spots: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("init-spots status = %d", resp.StatusCode)
	}
	return srv.URL + "/api/v1"
}

func token(t *testing.T, userID, name string) string {
	t.Helper()
	tok, err := auth.NewJWTVerifier(testSecret).Sign(auth.Identity{UserID: userID, Name: name}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestClientListSpots(t *testing.T) {
	c := New(newTestServer(t))
	ctx := context.Background()

	resp, err := c.ListSpots(ctx, SpotQuery{Category: "parks", Limit: 20})
	if err != nil {
		t.Fatalf("ListSpots: %v", err)
	}
	if resp.Total != 7 || len(resp.Spots) != 7 || resp.TotalPages != 1 {
		t.Errorf("parks: total=%d spots=%d totalPages=%d", resp.Total, len(resp.Spots), resp.TotalPages)
	}

	resp, err = c.ListSpots(ctx, SpotQuery{Query: "coffee", Limit: 20})
	if err != nil {
		t.Fatalf("ListSpots(q): %v", err)
	}
	if resp.Intent == nil || resp.Intent.Category != "cafes" {
		t.Fatalf("intent = %+v, want cafes", resp.Intent)
	}
	if resp.Total != 7 {
		t.Errorf("coffee total = %d, want 7", resp.Total)
	}

	origin := spatial.Coordinates{Latitude: 40.7580, Longitude: -73.9855}
	resp, err = c.ListSpots(ctx, SpotQuery{SortBy: "distance", Origin: &origin, Limit: 5})
	if err != nil {
		t.Fatalf("ListSpots(distance): %v", err)
	}
	if len(resp.Spots) != 5 {
		t.Fatalf("distance page = %d spots, want 5", len(resp.Spots))
	}
	if resp.Spots[0].Distance == nil {
		t.Error("distance not attached")
	}
}

func TestClientGetSpotNotFound(t *testing.T) {
	c := New(newTestServer(t))

	spot, err := c.GetSpot(context.Background(), "spot:1")
	if err != nil {
		t.Fatalf("GetSpot: %v", err)
	}
	if spot.Key != "spot:1" {
		t.Errorf("Key = %s", spot.Key)
	}

	_, err = c.GetSpot(context.Background(), "spot:404")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClientReviewLifecycle(t *testing.T) {
	base := newTestServer(t)
	ctx := context.Background()
	alice := New(base, WithToken(token(t, "alice", "Alice")))
	bob := New(base, WithToken(token(t, "bob", "Bob")))

	comment := "great light"
	review, err := alice.CreateReview(ctx, "spot:2", models.ReviewInput{Rating: 5, Comment: &comment})
	if err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if review.UserID == nil || *review.UserID != "alice" || review.UserName != "Alice" {
		t.Errorf("review author = %v/%s", review.UserID, review.UserName)
	}

	_, err = alice.CreateReview(ctx, "spot:2", models.ReviewInput{Rating: 6})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("rating 6: err = %v, want ErrValidation", err)
	}

	reviews, err := bob.GetReviews(ctx, "spot:2")
	if err != nil || len(reviews) != 1 {
		t.Fatalf("GetReviews = %d, %v", len(reviews), err)
	}

	spot, err := bob.GetSpot(ctx, "spot:2")
	if err != nil {
		t.Fatal(err)
	}
	if spot.AvgRating != 5 || spot.ReviewCount != 1 {
		t.Errorf("aggregate = %v/%d, want 5/1", spot.AvgRating, spot.ReviewCount)
	}

	if err := bob.DeleteReview(ctx, review.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("delete by non-owner: err = %v, want ErrNotFound", err)
	}
	if err := alice.DeleteReview(ctx, review.ID); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	mine, err := alice.GetUserReviews(ctx)
	if err != nil || len(mine) != 0 {
		t.Errorf("GetUserReviews after delete = %d, %v", len(mine), err)
	}
}

func TestClientUserRoutesRequireToken(t *testing.T) {
	c := New(newTestServer(t))

	_, err := c.GetHistory(context.Background())
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClientLoadHistory(t *testing.T) {
	c := New(newTestServer(t), WithToken(token(t, "carol", "Carol")))
	ctx := context.Background()

	for _, key := range []string{"spot:5", "spot:1", "spot:12"} {
		if _, err := c.AddHistory(ctx, key); err != nil {
			t.Fatalf("AddHistory(%s): %v", key, err)
		}
	}

	spots, err := c.LoadHistory(ctx)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	want := []string{"spot:5", "spot:1", "spot:12"}
	if len(spots) != len(want) {
		t.Fatalf("got %d spots, want %d", len(spots), len(want))
	}
	for i, s := range spots {
		if s.Key != want[i] {
			t.Errorf("spots[%d] = %s, want %s", i, s.Key, want[i])
		}
	}

	spots, err = c.SpotsByKey(ctx, []string{"spot:3", "spot:999", "spot:4"})
	if err != nil {
		t.Fatalf("SpotsByKey: %v", err)
	}
	if len(spots) != 2 || spots[0].Key != "spot:3" || spots[1].Key != "spot:4" {
		t.Errorf("SpotsByKey skipped wrong keys: %+v", spots)
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).GetSpot(context.Background(), "spot:1")
	if !errors.Is(err, apperror.ErrTransient) {
		t.Errorf("err = %v, want ErrTransient", err)
	}
}

func TestClientNonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListSpots(context.Background(), SpotQuery{})
	if !errors.Is(err, apperror.ErrTransient) {
		t.Errorf("err = %v, want ErrTransient", err)
	}
}

func TestLocationCache(t *testing.T) {
	store := kvstore.NewMemory(4)
	cache := NewLocationCache(store)
	ctx := context.Background()

	got, err := cache.Load(ctx)
	if err != nil || got != nil {
		t.Fatalf("empty Load = %v, %v", got, err)
	}

	if err := cache.Save(ctx, spatial.Coordinates{Latitude: 95, Longitude: 0}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("invalid Save: err = %v", err)
	}

	want := spatial.Coordinates{Latitude: 40.73, Longitude: -73.99}
	if err := cache.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, err = cache.Load(ctx)
	if err != nil || got == nil || *got != want {
		t.Fatalf("Load = %v, %v", got, err)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := cache.Load(ctx); got != nil {
		t.Errorf("Load after Clear = %v", got)
	}
}
