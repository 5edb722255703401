// Package otpstore implements the second-factor collaborator on Redis.
//
// Codes are stored bcrypt-hashed under a TTL key per transaction, so a
// leaked store dump does not reveal usable codes and expiry needs no
// sweeper. Delivering the code to the customer (SMS, email) is out of
// scope and handled through the DeliverFunc hook.
package otpstore

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/petrbank/ledger-core/internal/domain"
	"github.com/petrbank/ledger-core/pkg/passpkg"
	"github.com/petrbank/ledger-core/pkg/randompkg"
	"github.com/rs/zerolog"
)

const codeLength = 6

// DeliverFunc hands a freshly issued code to a delivery channel.
type DeliverFunc func(ctx context.Context, contact, code string) error

// RedisStore issues and validates one-time confirmation codes.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	deliver DeliverFunc
}

// NewRedisStore returns a second-factor store with the given code
// validity window. deliver may be nil.
func NewRedisStore(client *redis.Client, ttl time.Duration, deliver DeliverFunc) *RedisStore {
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		deliver: deliver,
	}
}

// Issue generates a code for the transaction, stores its hash under the
// validity TTL and hands the plain code to the delivery hook. Reissuing
// overwrites the previous code.
func (s *RedisStore) Issue(ctx context.Context, transactionID, contact string) (time.Duration, error) {
	l := zerolog.Ctx(ctx)

	code := randompkg.Digits(codeLength)

	hash, err := passpkg.Hash(code)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, err
	}

	if err := s.client.Set(ctx, key(transactionID), hash, s.ttl).Err(); err != nil {
		l.Error().Err(err).Str("transaction_id", transactionID).Send()
		return 0, domain.ErrExternalService
	}

	if s.deliver != nil {
		if err := s.deliver(ctx, contact, code); err != nil {
			l.Error().Err(err).Str("transaction_id", transactionID).Msg("second factor delivery failed")
			return 0, domain.ErrExternalService
		}
	}

	return s.ttl, nil
}

// Validate checks the code against the stored hash. An absent key means
// the validity window has passed or the code was invalidated.
func (s *RedisStore) Validate(ctx context.Context, transactionID, code string) error {
	l := zerolog.Ctx(ctx)

	hash, err := s.client.Get(ctx, key(transactionID)).Result()
	if err == redis.Nil {
		return domain.ErrSecondFactorExpired
	}

	if err != nil {
		l.Error().Err(err).Str("transaction_id", transactionID).Send()
		return domain.ErrExternalService
	}

	if err := passpkg.Check(code, hash); err != nil {
		return domain.ErrSecondFactorInvalid
	}

	return nil
}

// Invalidate removes the code. Removing an absent code is a no-op.
func (s *RedisStore) Invalidate(ctx context.Context, transactionID string) error {
	if err := s.client.Del(ctx, key(transactionID)).Err(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("transaction_id", transactionID).Send()
		return domain.ErrExternalService
	}

	return nil
}

func key(transactionID string) string {
	return "otp:transfer:" + transactionID
}
