package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/HatcheryOps_Go/internal/config"
	"github.com/osse101/HatcheryOps_Go/internal/database"
	"github.com/osse101/HatcheryOps_Go/internal/database/postgres"
	"github.com/osse101/HatcheryOps_Go/internal/domain"
	"github.com/osse101/HatcheryOps_Go/internal/validation"
)

// Fixed ids so tokens minted with `devtool token` keep working across reseeds
const (
	seedAdminID  = domain.UserID("00000000-0000-4000-8000-000000000001")
	seedSellerID = domain.UserID("00000000-0000-4000-8000-000000000002")
	seedNewID    = domain.UserID("00000000-0000-4000-8000-000000000003")
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed demo profiles, or the profiles in a JSON fixture file"
}

func (c *SeedCommand) Run(args []string) error {
	if getEnv("ENVIRONMENT", "dev") == envProduction {
		return fmt.Errorf("refusing to seed a production database")
	}

	profiles := defaultSeedProfiles()
	if len(args) > 0 {
		loaded, err := loadSeedFixture(args[0])
		if err != nil {
			return err
		}
		profiles = loaded
	}

	ctx := context.Background()
	pool, err := database.NewPool(dbURL(), 2, config.DefaultDBMaxConnIdle, config.DefaultDBMaxConnLife)
	if err != nil {
		return err
	}
	defer pool.Close()

	repo := postgres.NewProfileRepository(pool)

	for i := range profiles {
		p := &profiles[i]
		if err := repo.UpsertProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to seed %s: %w", p.Name, err)
		}
		if p.SeedsCount > 0 {
			if err := repo.SetSeedsCount(ctx, p.ID, p.SeedsCount); err != nil {
				return fmt.Errorf("failed to assign seeds to %s: %w", p.Name, err)
			}
		}
		PrintInfo("%-6s %s  %s", p.Role, p.ID, p.Name)
	}

	PrintSuccess("Seeded %d profiles", len(profiles))
	return nil
}

// defaultSeedProfiles is one admin, one seller with seeds and one without
func defaultSeedProfiles() []domain.Profile {
	return []domain.Profile{
		{ID: seedAdminID, Name: "Hatchery Admin", Role: domain.RoleAdmin},
		{ID: seedSellerID, Name: "Asha Rao", Phone: "+91 98450 00001", Role: domain.RoleSeller,
			SeedsCount: 40, Location: &domain.GeoPoint{Latitude: 12.9716, Longitude: 77.5946}},
		{ID: seedNewID, Name: "Ravi Kumar", Role: domain.RoleSeller},
	}
}

type seedFixture struct {
	Profiles []domain.Profile `json:"profiles"`
}

// loadSeedFixture validates a fixture file against the profiles schema before decoding it
func loadSeedFixture(path string) ([]domain.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	if err := validation.NewSchemaValidator().ValidateBytes(data, validation.SchemaProfiles); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var fixture seedFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	for i := range fixture.Profiles {
		id, err := domain.ParseUserID(fixture.Profiles[i].ID.String())
		if err != nil {
			return nil, err
		}
		fixture.Profiles[i].ID = id
	}
	return fixture.Profiles, nil
}
