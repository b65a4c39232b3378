//go:build integration

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	server "brandpulse/internal/adapters/http_server"
	redisad "brandpulse/internal/adapters/redis"
	"brandpulse/internal/app"
	"brandpulse/internal/domain"
	mysqlrepo "brandpulse/internal/storage/mysql"
)

// ---------- helpers ----------

func pstr(s string) *string { return &s }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/migrations)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=brandpulse"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(res) })

	dsn := fmt.Sprintf("root:root@tcp(localhost:%s)/brandpulse?parseTime=true&loc=UTC", res.GetPort("3306/tcp"))
	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("mysql not ready: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ---------- the test ----------

func TestAPI_EndToEnd(t *testing.T) {
	ctx := context.Background()
	db := startMySQL(t)
	applyMigrations(t, db)

	repo := mysqlrepo.New(db)

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)

	srv := server.New(100)
	srv.MountHandlers(&server.Handlers{
		Q: app.NewQueryService(repo, cache, time.Minute),
		W: app.NewReviewService(repo, cache),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)

	// seed: one brand, two cities plus a city-less location
	for _, loc := range []domain.Location{
		{ID: 1, BrandID: 7, City: pstr("Delhi"), Status: "active"},
		{ID: 2, BrandID: 7, City: pstr("Pune"), Status: "active"},
		{ID: 3, BrandID: 7, Status: "active"},
	} {
		if err := repo.UpsertLocation(ctx, loc); err != nil {
			t.Fatalf("seed location: %v", err)
		}
	}

	post := func(locationID int64, rating int, text string) {
		t.Helper()
		body := fmt.Sprintf(`{"rating":%d,"review_text":%q}`, rating, text)
		resp, err := http.Post(fmt.Sprintf("%s/v1/locations/%d/reviews", ts.URL, locationID), "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post review: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("post review status: %d", resp.StatusCode)
		}
	}
	post(1, 5, "superb")
	post(1, 3, "fine")
	post(2, 4, "good")
	post(3, 1, "bad")

	// summary reflects the 30d view
	resp, err := http.Get(ts.URL + "/v1/locations/1/summary")
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	var sum struct {
		ReviewCount   int64    `json:"review_count"`
		AverageRating *float64 `json:"average_rating"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	resp.Body.Close()
	if sum.ReviewCount != 2 || sum.AverageRating == nil || *sum.AverageRating != 4.00 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	// a location with no reviews reads as zero, not 404
	resp, err = http.Get(ts.URL + "/v1/locations/2/summary")
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("summary status: %d", resp.StatusCode)
	}
	resp.Body.Close()

	// heatmap groups per city, city-less rows under Unknown
	resp, err = http.Get(ts.URL + "/v1/brands/7/heatmap")
	if err != nil {
		t.Fatalf("get heatmap: %v", err)
	}
	var hm struct {
		Cities []struct {
			City          string  `json:"city"`
			ReviewCount   int64   `json:"review_count"`
			AverageRating float64 `json:"average_rating"`
		} `json:"cities"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&hm); err != nil {
		t.Fatalf("decode heatmap: %v", err)
	}
	resp.Body.Close()

	byCity := map[string]int64{}
	for _, c := range hm.Cities {
		byCity[c.City] = c.ReviewCount
	}
	if byCity["Delhi"] != 2 || byCity["Pune"] != 1 || byCity["Unknown"] != 1 {
		t.Fatalf("unexpected heatmap rows: %+v", hm.Cities)
	}
}
