package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"brandpulse/internal/adapters/observability"
	"brandpulse/internal/app"
	"brandpulse/internal/domain"
	"brandpulse/internal/shared"
	mysqlrepo "brandpulse/internal/storage/mysql"
)

var cities = []string{"Delhi", "Mumbai", "Pune", "Chennai", "Bengaluru", "Hyderabad", "Kolkata", "Jaipur"}

var snippets = []string{
	"quick service",
	"loved the staff",
	"would not come back",
	"decent for the price",
	"spotless store, friendly team",
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.SeedWorkers).
		Int("locations", cfg.SeedLocations).
		Int("reviews_per_location", cfg.SeedReviews).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	reviews := app.NewReviewService(repo, nil)

	// Locations first: reviews carry a foreign key to them. Spread across a
	// handful of brands so heatmaps have something to group.
	for i := 1; i <= cfg.SeedLocations; i++ {
		city := cities[i%len(cities)]
		loc := domain.Location{
			ID:      int64(i),
			BrandID: int64(i%5 + 1),
			City:    &city,
			Status:  "active",
		}
		if err := repo.UpsertLocation(ctx, loc); err != nil {
			log.Fatal().Err(err).Int64("id", loc.ID).Msg("upsert location failed")
		}
	}
	log.Info().Int("count", cfg.SeedLocations).Msg("locations seeded")

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for i := 1; i <= cfg.SeedLocations; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(locationID int64) {
			defer wg.Done()
			defer sem.Release(1)

			for n := 0; n < cfg.SeedReviews; n++ {
				rating := rand.Intn(5) + 1
				var text *string
				if rand.Intn(3) > 0 {
					s := fmt.Sprintf("%s (visit %d)", snippets[rand.Intn(len(snippets))], n+1)
					text = &s
				}
				if _, err := reviews.CreateReview(ctx, locationID, rating, text); err != nil {
					log.Warn().Int64("location", locationID).Err(err).Msg("seed review failed")
					return
				}
			}
			log.Info().Int64("location", locationID).Msg("seed ok")
		}(int64(i))
	}

	wg.Wait()
	log.Info().Msg("seeding completed")
}
