package solicitud

import "context"

// Store describes persistence operations for solicitudes. Listings are
// ordered by creation time descending, ties broken by insertion order.
type Store interface {
	Create(ctx context.Context, s *Solicitud) error
	Find(ctx context.Context, id int64) (Solicitud, error)
	ListVisibleTo(ctx context.Context, departamento string) ([]Solicitud, error)
	Update(ctx context.Context, s Solicitud) error
	Delete(ctx context.Context, id int64) error
	FindByIDs(ctx context.Context, ids []int64) ([]Solicitud, error)
	All(ctx context.Context) ([]Solicitud, error)
}
