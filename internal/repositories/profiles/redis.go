package profiles

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/duat-combat/internal/clock"
	duaterr "github.com/KirkDiggler/duat-combat/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// addGoldScript increments gold and floors it at zero in one round trip
var addGoldScript = redis.NewScript(`
local gold = redis.call('HINCRBY', KEYS[1], 'gold', ARGV[1])
if gold < 0 then
	redis.call('HSET', KEYS[1], 'gold', 0)
	gold = 0
end
redis.call('HSET', KEYS[1], 'updated_at', ARGV[2])
return gold
`)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	Clock  clock.Clock
}

type redisRepo struct {
	client redis.UniversalClient
	clock  clock.Clock
}

// NewRedisRepository creates a Redis-backed profile repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	return &redisRepo{
		client: cfg.Client,
		clock:  clk,
	}
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Profile, error) {
	if id == "" {
		return nil, duaterr.InvalidArgument("profile id is required")
	}

	var (
		fields map[string]string
		owned  []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fields, err = r.client.HGetAll(gctx, profileKey(id)).Result()
		if err != nil {
			return fmt.Errorf("failed to get profile %s: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		owned, err = r.client.SMembers(gctx, cardsKey(id)).Result()
		if err != nil {
			return fmt.Errorf("failed to get cards of profile %s: %w", id, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, duaterr.WrapWithCode(err, duaterr.CodeUnavailable, "profile store")
	}

	if len(fields) == 0 && len(owned) == 0 {
		return nil, duaterr.NotFoundf("profile %s not found", id)
	}

	p := &Profile{ID: id, OwnedCards: owned}
	sort.Strings(p.OwnedCards)

	var err error
	if p.Gold, err = intField(fields, fieldGold); err != nil {
		return nil, err
	}
	if p.BonusMaxSand, err = intField(fields, fieldBonusMaxSand); err != nil {
		return nil, err
	}
	if raw, ok := fields[fieldUpdatedAt]; ok {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, duaterr.Internalf("profile %s has a corrupt %s: %q", id, fieldUpdatedAt, raw)
		}
		p.UpdatedAt = time.UnixMilli(ms).UTC()
	}

	return p, nil
}

func (r *redisRepo) AddGold(ctx context.Context, id string, delta int) (int, error) {
	if id == "" {
		return 0, duaterr.InvalidArgument("profile id is required")
	}

	gold, err := addGoldScript.Run(ctx, r.client, []string{profileKey(id)}, delta, r.now()).Int()
	if err != nil {
		return 0, duaterr.WrapWithCode(err, duaterr.CodeUnavailable, "failed to update gold")
	}
	return gold, nil
}

func (r *redisRepo) AddBonusMaxSand(ctx context.Context, id string, amount int) (int, error) {
	if id == "" {
		return 0, duaterr.InvalidArgument("profile id is required")
	}
	if amount < 0 {
		return 0, duaterr.InvalidArgumentf("max sand increase must not be negative, got %d", amount)
	}

	pipe := r.client.TxPipeline()
	total := pipe.HIncrBy(ctx, profileKey(id), fieldBonusMaxSand, int64(amount))
	pipe.HSet(ctx, profileKey(id), fieldUpdatedAt, r.now())
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, duaterr.WrapWithCode(err, duaterr.CodeUnavailable, "failed to record max sand increase")
	}

	return int(total.Val()), nil
}

func (r *redisRepo) AddOwnedCards(ctx context.Context, id string, cardIDs ...string) error {
	if id == "" {
		return duaterr.InvalidArgument("profile id is required")
	}
	if len(cardIDs) == 0 {
		return nil
	}

	members := make([]any, len(cardIDs))
	for i, c := range cardIDs {
		members[i] = c
	}

	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, cardsKey(id), members...)
	pipe.HSet(ctx, profileKey(id), fieldUpdatedAt, r.now())
	if _, err := pipe.Exec(ctx); err != nil {
		return duaterr.WrapWithCode(err, duaterr.CodeUnavailable, "failed to add cards")
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, profileKey(id), cardsKey(id)).Err(); err != nil {
		return duaterr.WrapWithCode(err, duaterr.CodeUnavailable, "failed to delete profile")
	}
	return nil
}

func (r *redisRepo) now() int64 {
	return r.clock.Now().UnixMilli()
}

func intField(fields map[string]string, name string) (int, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, duaterr.Internalf("corrupt profile field %s: %q", name, raw)
	}
	return v, nil
}
