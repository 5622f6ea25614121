package eventgen

import (
	"context"

	"evolvagotchi/internal/domain/ledger"
)

// PetContext son las stats que el usuario está viendo cuando pide un
// evento (post-ledger). El generador las usa para dar contexto, nada más.
type PetContext struct {
	Name      string
	Stage     int
	StageName string
	Happiness int
	Hunger    int
	Health    int
	AgeBlocks uint64
}

// Generator produce cero o un evento especulativo para la mascota. El core
// trata el generador como caja negra: cualquier efecto ausente vale 0 y un
// error solo significa "esta vez no hubo evento".
type Generator interface {
	Generate(ctx context.Context, pc PetContext) (ledger.AppendInput, error)
}
