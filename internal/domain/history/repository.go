package history

import "context"

// MaxEntriesPerPet limita el timeline por mascota; al superarlo se
// descartan los hitos más viejos.
const MaxEntriesPerPet = 100

type Repository interface {
	Append(ctx context.Context, e Entry) error
	// ListByPet devuelve los hitos en orden de inserción (viejo -> nuevo).
	ListByPet(ctx context.Context, petID string) ([]Entry, error)
}
