package trade

import (
	"context"

	"github.com/freshmart/backend/internal/domain/catalog"
	"github.com/freshmart/backend/internal/domain/partner"
	"github.com/freshmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// uniqueIDs drops duplicates and nil ids, keeping first-seen order
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func loadCustomers(ctx context.Context, repo partner.CustomerRepository, ids []uuid.UUID) (map[uuid.UUID]partner.Customer, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	customers, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]partner.Customer, len(customers))
	for _, c := range customers {
		byID[c.ID] = c
	}
	return byID, nil
}

func loadProducts(ctx context.Context, repo catalog.ProductRepository, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// publishEvents forwards pending aggregate events after commit. Failures are
// logged only; the write has already succeeded.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregate shared.AggregateRoot) {
	if publisher == nil {
		aggregate.ClearDomainEvents()
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.Warn("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.String("aggregate_id", event.AggregateID().String()),
				zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}
