// Command seed populates the database with a demo admin, a demo user, and a
// handful of tasks. Intended for local development only.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/hash"
	"github.com/taskforge/task-api/internal/infrastructure/config"
	"github.com/taskforge/task-api/internal/infrastructure/db/postgres"
	"github.com/taskforge/task-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Postgres.URL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	users := postgres.NewUserRepository(pool)
	tasks := postgres.NewTaskRepository(pool)
	hasher := hash.NewHasher(cfg.Auth.BcryptCost)

	seedUsers := []struct {
		username, email, password, role string
	}{
		{"admin", "admin@taskforge.local", "admin-password", domain.RoleAdmin},
		{"demo", "demo@taskforge.local", "demo-password", domain.RoleUser},
	}

	now := time.Now().UTC()
	var demoID string

	for _, su := range seedUsers {
		digest, err := hasher.Hash(su.password)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to hash seed password")
		}
		user := &domain.User{
			ID:           uuid.New().String(),
			Username:     su.username,
			Email:        su.email,
			PasswordHash: digest,
			Role:         su.role,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		created, err := users.Create(ctx, user)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateUser) {
				log.Info().Str("email", su.email).Msg("user already seeded, skipping")
				existing, err := users.FindByEmail(ctx, su.email)
				if err != nil {
					log.Fatal().Err(err).Msg("failed to look up seeded user")
				}
				created = existing
			} else {
				log.Fatal().Err(err).Msg("failed to seed user")
			}
		}
		if su.role == domain.RoleUser {
			demoID = created.ID
		}
		log.Info().Str("email", su.email).Str("role", su.role).Msg("seeded user")
	}

	due := now.Add(72 * time.Hour)
	seedTasks := []*domain.Task{
		{Title: "Write project proposal", Description: "Draft and circulate for review", Priority: domain.PriorityHigh, Status: domain.StatusPending, DueDate: &due},
		{Title: "Review pull requests", Priority: domain.PriorityMedium, Status: domain.StatusPending},
		{Title: "Update onboarding docs", Priority: domain.PriorityLow, Status: domain.StatusCompleted},
	}

	for _, t := range seedTasks {
		t.ID = uuid.New().String()
		t.UserID = demoID
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := tasks.Create(ctx, t); err != nil {
			log.Fatal().Err(err).Msg("failed to seed task")
		}
		log.Info().Str("title", t.Title).Msg("seeded task")
	}

	log.Info().Msg("seeding complete")
}
