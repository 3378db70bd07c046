package repositories

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/morsalin101/chat-app/domain"
	"github.com/redis/go-redis/v9"
)

const challengeKeyPrefix = "otp:challenge:"

// backstopTTL guards against leaked rows if the sweep is not running.
// Logical expiry is always the stored expires_at field.
const backstopTTL = 24 * time.Hour

// incrAttemptsScript charges one attempt only if the challenge still exists.
// A plain EXISTS+HINCRBY pair leaves a window where a concurrent delete lands
// between the two commands and HINCRBY resurrects the hash with nothing but
// an attempts field.
var incrAttemptsScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return redis.call('HINCRBY', KEYS[1], 'attempts', 1)
end
return -1
`)

// markVerifiedScript flips the verified flag only if the challenge still
// exists, for the same reason as incrAttemptsScript.
var markVerifiedScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	redis.call('HSET', KEYS[1], 'verified', '1')
	return 1
end
return 0
`)

// ChallengeRepositoryImpl implements domain.ChallengeRepository using one
// Redis hash per phone number.
type ChallengeRepositoryImpl struct {
	client *redis.Client
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(client *redis.Client) domain.ChallengeRepository {
	return &ChallengeRepositoryImpl{client: client}
}

func challengeKey(phone string) string {
	return challengeKeyPrefix + phone
}

// Replace implements domain.ChallengeRepository. The delete and the write
// run in one pipeline, so concurrent generates resolve last-writer-wins.
func (r *ChallengeRepositoryImpl) Replace(ctx context.Context, challenge *domain.OtpChallenge) error {
	key := challengeKey(challenge.Phone)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"code", challenge.Code,
		"created_at", challenge.CreatedAt.Unix(),
		"expires_at", challenge.ExpiresAt.Unix(),
		"verified", boolField(challenge.Verified),
		"attempts", challenge.Attempts,
	)
	pipe.Expire(ctx, key, backstopTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}
	return nil
}

// FindByPhone implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
	fields, err := r.client.HGetAll(ctx, challengeKey(phone)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read otp challenge: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrOTPNotFound
	}
	// A hash without its core fields is not a challenge. Treat it as absent
	// rather than surfacing a parse error to the state machine.
	if fields["code"] == "" || fields["expires_at"] == "" {
		return nil, domain.ErrOTPNotFound
	}

	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt otp challenge for %s: %w", phone, err)
	}
	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt otp challenge for %s: %w", phone, err)
	}
	attempts, err := strconv.Atoi(fields["attempts"])
	if err != nil {
		return nil, fmt.Errorf("corrupt otp challenge for %s: %w", phone, err)
	}

	return &domain.OtpChallenge{
		Phone:     phone,
		Code:      fields["code"],
		CreatedAt: time.Unix(createdAt, 0),
		ExpiresAt: time.Unix(expiresAt, 0),
		Verified:  fields["verified"] == "1",
		Attempts:  attempts,
	}, nil
}

// IncrementAttempts implements domain.ChallengeRepository. The existence
// check and the HINCRBY run in one script, so racing verifies are each
// charged an attempt and a concurrent delete can never be undone.
func (r *ChallengeRepositoryImpl) IncrementAttempts(ctx context.Context, phone string) (int, error) {
	attempts, err := incrAttemptsScript.Run(ctx, r.client, []string{challengeKey(phone)}).Int()
	if err != nil {
		return 0, fmt.Errorf("failed to increment otp attempts: %w", err)
	}
	if attempts < 0 {
		return 0, domain.ErrOTPNotFound
	}
	return attempts, nil
}

// MarkVerified implements domain.ChallengeRepository
func (r *ChallengeRepositoryImpl) MarkVerified(ctx context.Context, phone string) error {
	set, err := markVerifiedScript.Run(ctx, r.client, []string{challengeKey(phone)}).Int()
	if err != nil {
		return fmt.Errorf("failed to mark otp challenge verified: %w", err)
	}
	if set == 0 {
		return domain.ErrOTPNotFound
	}
	return nil
}

// Delete implements domain.ChallengeRepository. Idempotent.
func (r *ChallengeRepositoryImpl) Delete(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, challengeKey(phone)).Err(); err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}
	return nil
}

// DeleteExpired implements domain.ChallengeRepository. Only rows already
// past expiry are touched, so a concurrent verify on the same row observes
// not-found at worst.
func (r *ChallengeRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	deleted := 0

	iter := r.client.Scan(ctx, 0, challengeKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		raw, err := r.client.HGet(ctx, key, "expires_at").Result()
		if err == redis.Nil {
			continue // deleted under us
		}
		if err != nil {
			return deleted, fmt.Errorf("failed to read otp expiry: %w", err)
		}

		expiresAt, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return deleted, fmt.Errorf("corrupt otp expiry on %s: %w", key, err)
		}

		if now.After(time.Unix(expiresAt, 0)) {
			if err := r.client.Del(ctx, key).Err(); err != nil {
				return deleted, fmt.Errorf("failed to delete expired otp: %w", err)
			}
			deleted++
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to scan otp challenges: %w", err)
	}

	return deleted, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
