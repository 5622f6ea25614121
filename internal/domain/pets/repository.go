package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
}

// BlockClock expone el contador de bloques de la cadena. El engine es
// pull-based: nadie tickea en background, cada operación pide el bloque
// actual y aplica el decay pendiente.
type BlockClock interface {
	Current() uint64
}
