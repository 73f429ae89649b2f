package submitlock

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/ahmedmubarak14/poconfirm/internal/config"
)

// Module provides the submit locker: Redis-backed when an address is
// configured, in-process otherwise.
var Module = fx.Options(
	fx.Provide(newLocker),
)

type lockerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

func newLocker(p lockerParams) Locker {
	if p.Config.RedisAddress == "" {
		return NewMemoryLocker()
	}

	client := redis.NewClient(&redis.Options{Addr: p.Config.RedisAddress})
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return NewRedisLocker(client, p.Config.SubmitLockTTL)
}
