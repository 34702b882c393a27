package contracts

import (
	"context"
	"time"

	"clinicbook-service/internal/app/models"
	"clinicbook-service/internal/pkg/dto/requests"
	"clinicbook-service/internal/pkg/dto/responses"
)

type BookingUsecase interface {
	CreateDraft(ctx context.Context) (*responses.DraftCreated, error)
	FindDraftByID(ctx context.Context, draftID string) (*responses.DraftView, error)
	Advance(ctx context.Context, draftID string, request *requests.AdvanceDraft) (*responses.DraftView, error)
	Retreat(ctx context.Context, draftID string) (*responses.DraftView, error)
	EditFrom(ctx context.Context, draftID string, request *requests.EditDraft) (*responses.DraftView, error)
	Cancel(ctx context.Context, draftID string) (*responses.DraftView, error)
}

type BookingDraftRepository interface {
	CreateDraft(ctx context.Context, draft *models.BookingDraft, ttl time.Duration) error
	FindDraftByID(ctx context.Context, draftID string) (*models.BookingDraft, error)
	UpdateDraft(ctx context.Context, draft *models.BookingDraft, ttl time.Duration) error
	NextBookingNumber(ctx context.Context) (int64, error)
}
