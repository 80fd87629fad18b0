// Package redis implementa la revocación de tokens de sesión sobre Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventory-manager/internal/application/auth"
	"github.com/jhoicas/inventory-manager/pkg/config"
)

var _ auth.TokenDenylist = (*Denylist)(nil)

const keyPrefix = "auth:revoked:"

// Denylist guarda el jti de cada token cerrado con logout hasta su expiración natural.
type Denylist struct {
	client goredis.UniversalClient
	now    func() time.Time
}

// NewClient abre el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewDenylist construye la denylist sobre un cliente existente.
func NewDenylist(client goredis.UniversalClient) *Denylist {
	return &Denylist{client: client, now: time.Now}
}

// Revoke marca el token como revocado hasta until. Un token ya expirado no se guarda.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, keyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// IsRevoked indica si el token fue revocado.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}
