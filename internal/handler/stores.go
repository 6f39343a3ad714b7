package handler

// Store interfaces consumed by the handlers. The repository package's
// concrete types satisfy them; tests substitute in-memory fakes.

import (
	"context"

	"github.com/pumpcare/connect/internal/model"
	"github.com/pumpcare/connect/internal/queue"
)

type AdminStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Admin, error)
}

type PanchayatStore interface {
	Create(ctx context.Context, p model.Panchayat) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Panchayat, error)
	GetByID(ctx context.Context, id uint64) (model.Panchayat, error)
	Update(ctx context.Context, p model.Panchayat) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.Panchayat, error)
	Search(ctx context.Context, query string) ([]model.Panchayat, error)
}

type OperatorStore interface {
	Create(ctx context.Context, o model.Operator) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.Operator, error)
	GetByID(ctx context.Context, id uint64) (model.Operator, error)
	Update(ctx context.Context, o model.Operator) error
	Delete(ctx context.Context, id uint64) error
	List(ctx context.Context) ([]model.Operator, error)
}

type VillagerStore interface {
	Create(ctx context.Context, v model.Villager) error
	GetByEmail(ctx context.Context, email string) (model.Villager, error)
	GetByHouseNo(ctx context.Context, houseNo uint64) (model.Villager, error)
	Update(ctx context.Context, v model.Villager) error
	Delete(ctx context.Context, houseNo uint64) error
}

type SectorStore interface {
	Create(ctx context.Context, s model.Sector) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Sector, error)
	Update(ctx context.Context, s model.Sector) error
	Delete(ctx context.Context, id uint64) error
}

type FeedbackStore interface {
	Create(ctx context.Context, f model.Feedback) (uint64, error)
	ListRecent(ctx context.Context, limit int) ([]model.Feedback, error)
	ListByHouse(ctx context.Context, houseNo uint64) ([]model.Feedback, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

// FeedbackPublisher emits feedback lifecycle events. Failures are logged by
// the implementation and never fail the request that triggered them.
type FeedbackPublisher interface {
	PublishFeedbackCreated(ctx context.Context, ev queue.FeedbackCreatedEvent) error
}
