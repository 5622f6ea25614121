package sqlite

import (
	"context"
	"database/sql"

	"evolvagotchi/internal/domain/history"
)

type HistoryRepo struct {
	db *sql.DB
}

func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Append(ctx context.Context, e history.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_history (
			id, pet_id, kind, title, description, icon,
			stat_happiness, stat_hunger, stat_health, stat_stage,
			recorded_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?)
	`,
		e.ID,
		e.PetID,
		string(e.Kind),
		e.Title,
		e.Description,
		e.Icon,
		toNullInt(e.Stats.Happiness),
		toNullInt(e.Stats.Hunger),
		toNullInt(e.Stats.Health),
		toNullInt(e.Stats.Stage),
		e.RecordedAt,
	)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM pet_history
		WHERE pet_id = ? AND id NOT IN (
			SELECT id FROM pet_history
			WHERE pet_id = ?
			ORDER BY recorded_at DESC, id DESC
			LIMIT ?
		)
	`, e.PetID, e.PetID, history.MaxEntriesPerPet)
	return err
}

func (r *HistoryRepo) ListByPet(ctx context.Context, petID string) ([]history.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, kind, title, description, icon,
			stat_happiness, stat_hunger, stat_health, stat_stage,
			recorded_at
		FROM pet_history
		WHERE pet_id = ?
		ORDER BY recorded_at ASC, id ASC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]history.Entry, 0)
	for rows.Next() {
		var e history.Entry
		var kind string
		var happiness, hunger, health, stage sql.NullInt64

		if err := rows.Scan(
			&e.ID,
			&e.PetID,
			&kind,
			&e.Title,
			&e.Description,
			&e.Icon,
			&happiness,
			&hunger,
			&health,
			&stage,
			&e.RecordedAt,
		); err != nil {
			return nil, err
		}

		e.Kind = history.Kind(kind)
		e.Stats.Happiness = fromNullInt(happiness)
		e.Stats.Hunger = fromNullInt(hunger)
		e.Stats.Health = fromNullInt(health)
		e.Stats.Stage = fromNullInt(stage)
		out = append(out, e)
	}

	return out, rows.Err()
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
