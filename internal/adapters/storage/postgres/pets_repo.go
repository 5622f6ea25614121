package postgres

import (
	"context"
	"database/sql"
	"strings"

	"evolvagotchi/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_id, name,
			birth_block, age_blocks, stage,
			happiness, hunger, health,
			is_dead, death_block, last_update_block,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		p.BirthBlock,
		p.AgeBlocks,
		int(p.Stage),
		p.Happiness,
		p.Hunger,
		p.Health,
		p.IsDead,
		p.DeathBlock,
		p.LastUpdateBlock,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			age_blocks = $2,
			stage = $3,
			happiness = $4,
			hunger = $5,
			health = $6,
			is_dead = $7,
			death_block = $8,
			last_update_block = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.AgeBlocks,
		int(p.Stage),
		p.Happiness,
		p.Hunger,
		p.Health,
		p.IsDead,
		p.DeathBlock,
		p.LastUpdateBlock,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_id, name,
			birth_block, age_blocks, stage,
			happiness, hunger, health,
			is_dead, death_block, last_update_block,
			created_at, updated_at
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_id, name,
			birth_block, age_blocks, stage,
			happiness, hunger, health,
			is_dead, death_block, last_update_block,
			created_at, updated_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var stage int

	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.BirthBlock,
		&p.AgeBlocks,
		&stage,
		&p.Happiness,
		&p.Hunger,
		&p.Health,
		&p.IsDead,
		&p.DeathBlock,
		&p.LastUpdateBlock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, err
	}
	p.Stage = pets.Stage(stage)
	return p, nil
}
