package booking

import (
	"context"
	"fmt"
	"time"

	"clinicbook-service/internal/app/contracts"
	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/constvars"
	"clinicbook-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

type bookingRedisRepository struct {
	redisRepo contracts.RedisRepository
}

func NewBookingRedisRepository(redisRepo contracts.RedisRepository) contracts.BookingDraftRepository {
	return &bookingRedisRepository{redisRepo: redisRepo}
}

func draftKey(draftID string) string {
	return constvars.RedisDraftKeyPrefix + draftID
}

func (r *bookingRedisRepository) CreateDraft(ctx context.Context, draft *models.BookingDraft, ttl time.Duration) error {
	return r.redisRepo.Set(ctx, draftKey(draft.ID), draft, ttl)
}

func (r *bookingRedisRepository) FindDraftByID(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, err := r.redisRepo.Get(ctx, draftKey(draftID))
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, exceptions.ErrDraftNotFound(fmt.Errorf("draft %s not found or expired", draftID))
	}

	draft := new(models.BookingDraft)
	if err := json.Unmarshal([]byte(data), draft); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return draft, nil
}

func (r *bookingRedisRepository) UpdateDraft(ctx context.Context, draft *models.BookingDraft, ttl time.Duration) error {
	draft.UpdatedAt = time.Now()
	return r.redisRepo.Set(ctx, draftKey(draft.ID), draft, ttl)
}

func (r *bookingRedisRepository) NextBookingNumber(ctx context.Context) (int64, error) {
	return r.redisRepo.Increment(ctx, constvars.RedisBookingCounterKey)
}
