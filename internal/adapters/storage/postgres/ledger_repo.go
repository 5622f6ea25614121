package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"evolvagotchi/internal/domain/ledger"
)

type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// La entry vive en una sola fila por mascota, con los eventos en JSONB:
// sin updates parciales. La serialización por mascota la pone el service,
// así que el upsert alcanza.

func (r *LedgerRepo) Get(ctx context.Context, petID string) (ledger.Entry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT pet_id, total_happiness, total_hunger, total_health, events, last_sync
		FROM pending_effects
		WHERE pet_id = $1
	`, petID)

	var e ledger.Entry
	var rawEvents []byte
	if err := row.Scan(
		&e.PetID,
		&e.TotalHappiness,
		&e.TotalHunger,
		&e.TotalHealth,
		&rawEvents,
		&e.LastSync,
	); err != nil {
		if err == sql.ErrNoRows {
			return ledger.Entry{}, ledger.ErrEntryNotFound
		}
		return ledger.Entry{}, err
	}

	if err := json.Unmarshal(rawEvents, &e.Events); err != nil {
		return ledger.Entry{}, err
	}
	return e, nil
}

func (r *LedgerRepo) Put(ctx context.Context, e ledger.Entry) error {
	rawEvents, err := json.Marshal(e.Events)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pending_effects (pet_id, total_happiness, total_hunger, total_health, events, last_sync)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (pet_id) DO UPDATE SET
			total_happiness = EXCLUDED.total_happiness,
			total_hunger = EXCLUDED.total_hunger,
			total_health = EXCLUDED.total_health,
			events = EXCLUDED.events,
			last_sync = EXCLUDED.last_sync
	`,
		e.PetID,
		e.TotalHappiness,
		e.TotalHunger,
		e.TotalHealth,
		rawEvents,
		e.LastSync,
	)
	return err
}

func (r *LedgerRepo) Delete(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pending_effects WHERE pet_id = $1`, petID)
	return err
}
