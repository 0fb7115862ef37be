package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/config"
	"github.com/jengzang/studyspots-backend-go/internal/database"
	"github.com/jengzang/studyspots-backend-go/internal/kvstore"
	"github.com/jengzang/studyspots-backend-go/internal/middleware"
	"github.com/jengzang/studyspots-backend-go/internal/models"
)

const testSecret = "router-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
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
	if mutate != nil {
		mutate(cfg)
	}
	limiter := middleware.NewRateLimiter(cfg.ReviewRateLimit, time.Minute)
	t.Cleanup(limiter.Stop)

	r := SetupRouter(cfg, Deps{
		DB:       db,
		Cache:    kvstore.NewMemory(32),
		Verifier: auth.NewJWTVerifier(testSecret),
		Logger:   zap.NewNop(),
		Limiter:  limiter,
	})

	if w := do(t, r, http.MethodPost, "/api/v1/init-spots", "", nil); w.Code != http.StatusOK {
		t.Fatalf("init-spots status = %d", w.Code)
	}
	return r
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.RemoteAddr = "192.0.2.1:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v; body=%s", err, w.Body.String())
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("decode data: %v; body=%s", err, w.Body.String())
		}
	}
	return env
}

func token(t *testing.T, userID, name string) string {
	t.Helper()
	tok, err := auth.NewJWTVerifier(testSecret).Sign(auth.Identity{UserID: userID, Name: name}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)
	if w := do(t, r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}
}

func TestInitSpotsIdempotent(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/v1/init-spots", "", nil)
	var res models.SeedResult
	decode(t, w, &res)
	if res.Message != "Spots already exist" {
		t.Errorf("second init = %+v", res)
	}
}

func TestListSpotsEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/v1/spots?page=1&limit=20&category=parks&sortBy=none", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var res models.SpotsResponse
	decode(t, w, &res)
	if res.Total != 7 || res.TotalPages != 1 || len(res.Spots) != 7 || res.Page != 1 || res.Limit != 20 {
		t.Errorf("response = total %d, pages %d, len %d", res.Total, res.TotalPages, len(res.Spots))
	}

	// malformed numbers fall back to defaults
	w = do(t, r, http.MethodGet, "/api/v1/spots?page=abc&limit=-4&userLat=north&sortBy=distance", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	decode(t, w, &res)
	if res.Page != 1 || res.Limit != 50 || res.Total != 30 || res.Spots[0].Distance != nil {
		t.Errorf("defaults: page=%d limit=%d total=%d", res.Page, res.Limit, res.Total)
	}

	w = do(t, r, http.MethodGet, "/api/v1/spots?q=outdoor", "", nil)
	res = models.SpotsResponse{}
	decode(t, w, &res)
	if res.Intent == nil || res.Intent.Category != "parks" || res.Total != 7 {
		t.Errorf("intent search: intent=%+v total=%d", res.Intent, res.Total)
	}

	// an explicit category=all overrides the derived parks filter
	w = do(t, r, http.MethodGet, "/api/v1/spots?q=outdoor&category=all", "", nil)
	res = models.SpotsResponse{}
	decode(t, w, &res)
	if res.Total != 30 {
		t.Errorf("explicit all: total = %d, want 30", res.Total)
	}
}

func TestDistancePagesConcatenate(t *testing.T) {
	r := newTestRouter(t, nil)

	fetch := func(path string) models.SpotsResponse {
		var res models.SpotsResponse
		decode(t, do(t, r, http.MethodGet, path, "", nil), &res)
		return res
	}

	full := fetch("/api/v1/spots?limit=30&sortBy=distance&userLat=40.758&userLon=-73.9855")
	var paged []models.StudySpot
	for page := 1; page <= 3; page++ {
		res := fetch("/api/v1/spots?limit=10&sortBy=distance&userLat=40.758&userLon=-73.9855&page=" + strconv.Itoa(page))
		paged = append(paged, res.Spots...)
	}
	if len(paged) != len(full.Spots) {
		t.Fatalf("paged %d, full %d", len(paged), len(full.Spots))
	}
	for i := range paged {
		if paged[i].Key != full.Spots[i].Key {
			t.Fatalf("position %d: paged %s, full %s", i, paged[i].Key, full.Spots[i].Key)
		}
	}
}

func TestGetSpotEndpoint(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/v1/spots/spot:3", "", nil)
	var spot models.StudySpot
	decode(t, w, &spot)
	if w.Code != http.StatusOK || spot.Name != "Jefferson Market Library" {
		t.Errorf("status=%d spot=%+v", w.Code, spot)
	}

	w = do(t, r, http.MethodGet, "/api/v1/spots/spot:999", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown spot status = %d, want 404", w.Code)
	}
}

func TestReviewEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/api/v1/spots/spot:6/reviews", "", map[string]any{"rating": 6})
	if w.Code != http.StatusBadRequest {
		t.Errorf("rating 6 status = %d, want 400", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/v1/spots/spot:6/reviews", "", `{"rating": `)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/v1/spots/spot:6/reviews", "garbage", map[string]any{"rating": 4})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid token status = %d, want 401", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/v1/spots/spot:999/reviews", "", map[string]any{"rating": 4})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown spot status = %d, want 404", w.Code)
	}

	var reviews models.ReviewsResponse
	decode(t, do(t, r, http.MethodGet, "/api/v1/spots/spot:6/reviews", "", nil), &reviews)
	if len(reviews.Reviews) != 0 {
		t.Fatalf("rejected reviews were stored: %+v", reviews.Reviews)
	}

	w = do(t, r, http.MethodPost, "/api/v1/spots/spot:6/reviews", "", map[string]any{"rating": 4, "comment": "good coffee"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body=%s", w.Code, w.Body.String())
	}
	var created models.Review
	decode(t, w, &created)
	if created.UserName != "Anonymous" || created.SpotID != "spot:6" || created.ID == "" {
		t.Errorf("created = %+v", created)
	}

	tok := token(t, "user-7", "Kai")
	w = do(t, r, http.MethodPost, "/api/v1/spots/spot:6/reviews", tok, map[string]any{"rating": 2})
	var mine models.Review
	decode(t, w, &mine)
	if w.Code != http.StatusCreated || mine.UserName != "Kai" {
		t.Errorf("authenticated create: status=%d review=%+v", w.Code, mine)
	}

	decode(t, do(t, r, http.MethodGet, "/api/v1/spots/spot:6/reviews", "", nil), &reviews)
	if len(reviews.Reviews) != 2 || reviews.Reviews[0].ID != mine.ID {
		t.Errorf("reviews = %+v", reviews.Reviews)
	}

	var spot models.StudySpot
	decode(t, do(t, r, http.MethodGet, "/api/v1/spots/spot:6", "", nil), &spot)
	if spot.AvgRating != 3 || spot.ReviewCount != 2 {
		t.Errorf("aggregate = %v/%d, want 3/2", spot.AvgRating, spot.ReviewCount)
	}

	// owner-only delete through the store
	if w := do(t, r, http.MethodDelete, "/api/v1/user/reviews/"+created.ID, tok, nil); w.Code != http.StatusNotFound {
		t.Errorf("deleting someone else's review = %d, want 404", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/v1/user/reviews/"+mine.ID, tok, nil); w.Code != http.StatusOK {
		t.Errorf("delete own review = %d", w.Code)
	}
	var left models.ReviewsResponse
	decode(t, do(t, r, http.MethodGet, "/api/v1/user/reviews", tok, nil), &left)
	if len(left.Reviews) != 0 {
		t.Errorf("user reviews after delete = %+v", left.Reviews)
	}
}

func TestReviewsRequireAuth(t *testing.T) {
	r := newTestRouter(t, func(c *config.Config) { c.ReviewsRequireAuth = true })

	if w := do(t, r, http.MethodPost, "/api/v1/spots/spot:1/reviews", "", map[string]any{"rating": 5}); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/v1/spots/spot:1/reviews", token(t, "u", ""), map[string]any{"rating": 5}); w.Code != http.StatusCreated {
		t.Errorf("authenticated status = %d, want 201", w.Code)
	}
}

func TestReviewRateLimit(t *testing.T) {
	r := newTestRouter(t, func(c *config.Config) { c.ReviewRateLimit = 2 })

	codes := []int{}
	for i := 0; i < 3; i++ {
		codes = append(codes, do(t, r, http.MethodPost, "/api/v1/spots/spot:1/reviews", "", map[string]any{"rating": 5}).Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)
	tok := token(t, "user-h", "")

	if w := do(t, r, http.MethodGet, "/api/v1/user/history", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous history = %d, want 401", w.Code)
	}

	for _, key := range []string{"spot:21", "spot:2", "spot:21"} {
		w := do(t, r, http.MethodPost, "/api/v1/user/history", tok, map[string]string{"spotId": key})
		var res models.HistoryResponse
		decode(t, w, &res)
		if w.Code != http.StatusOK || res.Message != "Added to history" {
			t.Fatalf("add %s: status=%d res=%+v", key, w.Code, res)
		}
	}

	var res models.HistoryResponse
	decode(t, do(t, r, http.MethodGet, "/api/v1/user/history", tok, nil), &res)
	if len(res.History) != 2 || res.History[0] != "spot:21" || len(res.Spots) != 2 {
		t.Errorf("history = %+v", res)
	}

	if w := do(t, r, http.MethodPost, "/api/v1/user/history", tok, map[string]string{"spotId": "spot:999"}); w.Code != http.StatusNotFound {
		t.Errorf("unknown spot = %d, want 404", w.Code)
	}
}

func TestPublicReadsIgnoreUnverifiedToken(t *testing.T) {
	r := newTestRouter(t, nil)
	const anonKey = "public-anon-key"

	w := do(t, r, http.MethodGet, "/api/v1/spots?category=parks", anonKey, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body=%s", w.Code, w.Body.String())
	}
	var res models.SpotsResponse
	decode(t, w, &res)
	if res.Total != 7 {
		t.Errorf("total = %d, want 7", res.Total)
	}

	for _, path := range []string{"/api/v1/spots/spot:1", "/api/v1/spots/spot:1/reviews"} {
		if w := do(t, r, http.MethodGet, path, anonKey, nil); w.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, w.Code)
		}
	}

	if w := do(t, r, http.MethodPost, "/api/v1/spots/spot:1/reviews", anonKey, map[string]any{"rating": 4}); w.Code != http.StatusUnauthorized {
		t.Errorf("review POST status = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/v1/user/history", anonKey, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("user history status = %d, want 401", w.Code)
	}
}
