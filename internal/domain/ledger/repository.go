package ledger

import "context"

// Repository es un store durable keyed por pet id, sin updates parciales:
// la entry se escribe o se borra entera. La serialización por mascota la
// garantiza el Service, no el repo.
type Repository interface {
	// Get devuelve ErrEntryNotFound si no hay entry para la mascota.
	Get(ctx context.Context, petID string) (Entry, error)
	// Put reemplaza (o crea) la entry completa.
	Put(ctx context.Context, e Entry) error
	// Delete es idempotente: borrar lo que no existe no es error.
	Delete(ctx context.Context, petID string) error
}
