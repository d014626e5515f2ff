package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/duat-combat/internal/config"
	"github.com/KirkDiggler/duat-combat/internal/domain/cards"
	"github.com/KirkDiggler/duat-combat/internal/repositories/profiles"
	"github.com/KirkDiggler/duat-combat/internal/services/profile"
	"github.com/KirkDiggler/duat-combat/internal/services/resolver"
	"github.com/KirkDiggler/duat-combat/internal/services/simulation"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}
}

// run loads content, runs one batch and prints the summary
func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	balance, err := config.LoadBalance(cfg.Content.BalanceFile)
	if err != nil {
		return fmt.Errorf("failed to load balance: %w", err)
	}

	catalog, err := cards.LoadCatalog(cfg.Content.CatalogFile, cards.WithUpgradeBonus(cards.UpgradeBonus{
		Amount: balance.Upgrade.Bonus,
		Draw:   balance.Upgrade.DrawBonus,
	}))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	log.Printf("Loaded %d cards and %d enemies from %s", catalog.Len(), len(catalog.EnemyIDs()), cfg.Content.CatalogFile)

	// content that would fail at play time is reported up front
	divinities := resolver.NewDivinityRegistry()
	resolver.RegisterDefaults(divinities)
	for _, problem := range catalog.Lint(divinities.Has) {
		log.Printf("Content problem: %v", problem)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	simCfg := simulation.Config{
		Catalog:     catalog,
		Balance:     balance,
		ProfileID:   cfg.Simulation.ProfileID,
		VictoryGold: cfg.Simulation.VictoryGold,
		EnemyID:     cfg.Simulation.EnemyID,
		Combats:     cfg.Simulation.Combats,
		Workers:     cfg.Simulation.Workers,
		MaxFrames:   cfg.Simulation.MaxFrames,
		Seed:        cfg.Simulation.Seed,
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Printf("Failed to connect to Redis: %v", err)
			log.Println("Running without a profile store")
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Printf("Error closing Redis connection: %v", err)
				}
			}()
			simCfg.Profiles = profile.NewService(&profile.ServiceConfig{
				Repository: profiles.NewRedisRepository(&profiles.RedisRepoConfig{Client: redisClient}),
			})
			log.Printf("Using Redis profile %s", cfg.Simulation.ProfileID)
		}
	} else {
		log.Println("No REDIS_URL or REDIS_ADDR found, running without a profile store")
	}

	started := time.Now()
	report, err := simulation.Run(ctx, simCfg)
	if err != nil {
		return err
	}
	log.Printf("Finished in %s", time.Since(started).Round(time.Millisecond))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	summary := *report
	summary.Outcomes = nil
	if err := enc.Encode(summary); err != nil {
		log.Printf("Failed to write report: %v", err)
	}

	if report.ContentFailures > 0 {
		log.Printf("WARNING: %d combats hit content errors", report.ContentFailures)
	}
	return nil
}

func connectRedis(ctx context.Context, rc config.RedisConfig) (*redis.Client, error) {
	var opts *redis.Options
	if rc.URL != "" {
		parsed, err := redis.ParseURL(rc.URL)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     rc.Addr,
			Password: rc.Password,
			DB:       rc.DB,
		}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
