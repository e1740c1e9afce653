package main

import (
	"context"
	"fmt"
	"log"

	"ticketly/internal/notifications"
	"ticketly/internal/sessions"
	"ticketly/internal/shared/config"
	"ticketly/internal/shared/database"
	"ticketly/internal/titles"
	"ticketly/internal/venues"
	"ticketly/pkg/cache"

	"gorm.io/gorm"
)

type Seeder struct {
	db       *database.DB
	titles   titles.Service
	venues   venues.Service
	sessions sessions.Service
}

func main() {
	fmt.Println("🌱 Starting Ticketly Database Seeder...")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder, err := newSeeder(cfg, db)
	if err != nil {
		log.Fatalf("Failed to build seeder: %v", err)
	}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")
}

func newSeeder(cfg *config.Config, db *database.DB) (*Seeder, error) {
	registry, err := venues.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}
	slots := sessions.DefaultSlots
	if len(cfg.Scheduler.Slots) > 0 {
		if slots, err = sessions.ParseSlots(cfg.Scheduler.Slots); err != nil {
			return nil, err
		}
	}

	cacheService := cache.NewService(db.GetRedisClient())
	titleService := titles.NewService(titles.NewRepository(db.GetPostgreSQL()))
	venueService := venues.NewService(venues.NewRepository(db.GetPostgreSQL()), registry, titleService, cacheService)
	sessionService := sessions.NewService(
		sessions.NewRepository(db.GetPostgreSQL()),
		venueService,
		titleService,
		sessions.NewLocker(db.GetRedisClient()),
		notifications.NoopPublisher{},
		cacheService,
		sessions.Options{
			Plan: sessions.PlanOptions{
				WindowDays:  cfg.Scheduler.WindowDays,
				SlotsPerDay: cfg.Scheduler.SlotsPerDay,
				Location:    loc,
			},
			Slots:   slots,
			LockTTL: cfg.Scheduler.LockTTL,
			Workers: cfg.Scheduler.Workers,
		},
	)

	return &Seeder{
		db:       db,
		titles:   titleService,
		venues:   venueService,
		sessions: sessionService,
	}, nil
}

// CleanDatabase truncates every table, children first
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"sessions",
		"hall_seats",
		"halls",
		"cinemas",
		"titles",
	}

	return s.db.PostgreSQL.Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Truncating table: %s\n", table)
			if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
				return fmt.Errorf("failed to truncate table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll creates titles, one cinema per city, a hall per title and cinema,
// then fills the showtime window for every title.
func (s *Seeder) SeedAll(ctx context.Context) error {
	titleList, err := s.SeedTitles(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed titles: %w", err)
	}

	cinemas, err := s.SeedCinemas(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed cinemas: %w", err)
	}

	if err := s.SeedHalls(ctx, cinemas, titleList); err != nil {
		return fmt.Errorf("failed to seed halls: %w", err)
	}

	report, err := s.sessions.EnsureAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to schedule sessions: %w", err)
	}
	fmt.Printf("  🎬 Sessions: %d titles, %d created, %d skipped, %d failed\n",
		report.Titles, report.Created, report.Skipped, report.Failed)
	return nil
}

func (s *Seeder) SeedTitles(ctx context.Context) ([]*titles.Title, error) {
	requests := []titles.CreateTitleRequest{
		{Name: "Orbital Drift", Genres: []string{"Action", "Sci-Fi"}, Rating: "12", IsHighProfile: true, DurationMinutes: 148, ExternalRef: "seed-orbital-drift"},
		{Name: "Paper Lanterns", Genres: []string{"Animation", "Family"}, Rating: "L", DurationMinutes: 96, ExternalRef: "seed-paper-lanterns"},
		{Name: "The Quiet Harbour", Genres: []string{"Drama"}, Rating: "14", DurationMinutes: 121, ExternalRef: "seed-quiet-harbour"},
		{Name: "Night Shift", Genres: []string{"Thriller"}, Rating: "16", DurationMinutes: 109, ExternalRef: "seed-night-shift"},
		{Name: "Sertanejo Live", Kind: string(titles.KindEvent), Genres: []string{"Music"}, Rating: "L", DurationMinutes: 180, ExternalRef: "seed-sertanejo-live"},
	}

	created := make([]*titles.Title, 0, len(requests))
	for _, req := range requests {
		title, err := s.titles.CreateTitle(ctx, req)
		if err != nil {
			return nil, err
		}
		fmt.Printf("  🎞️  Title: %s\n", title.Name)
		created = append(created, title)
	}
	return created, nil
}

func (s *Seeder) SeedCinemas(ctx context.Context) ([]*venues.Cinema, error) {
	cities := s.venues.ListCities(ctx)
	cinemas := make([]*venues.Cinema, 0, len(cities))
	for _, city := range cities {
		cinema, err := s.venues.CreateCinema(ctx, venues.CreateCinemaRequest{
			Name:    "Cine " + city.Name,
			City:    city.Name,
			Address: "Centro, " + city.Name,
		})
		if err != nil {
			return nil, err
		}
		fmt.Printf("  🏢 Cinema: %s\n", cinema.Name)
		cinemas = append(cinemas, cinema)
	}
	return cinemas, nil
}

// SeedHalls provisions one hall per title in every cinema so the selector
// runs against each city's rules.
func (s *Seeder) SeedHalls(ctx context.Context, cinemas []*venues.Cinema, titleList []*titles.Title) error {
	for _, cinema := range cinemas {
		for i, title := range titleList {
			res, err := s.venues.ProvisionHall(ctx, cinema.ID, venues.ProvisionHallRequest{
				Name:    fmt.Sprintf("Sala %d", i+1),
				TitleID: title.ID.String(),
			})
			if err != nil {
				return fmt.Errorf("%s / %s: %w", cinema.Name, title.Name, err)
			}
			fmt.Printf("  🪑 %s %s: %s (%d seats)\n", cinema.Name, res.Hall.Name, res.Template.Name, res.Layout.Capacity)
		}
	}
	return nil
}
