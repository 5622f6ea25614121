// Package sqlite es el store "client-local": guarda el ledger de efectos
// pendientes y el timeline de display en un archivo embebido, sin
// depender de un Postgres externo.
package sqlite

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS pending_effects (
	pet_id          TEXT PRIMARY KEY,
	total_happiness INTEGER NOT NULL,
	total_hunger    INTEGER NOT NULL,
	total_health    INTEGER NOT NULL,
	events          TEXT NOT NULL,
	last_sync       TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS pet_history (
	id             TEXT PRIMARY KEY,
	pet_id         TEXT NOT NULL,
	kind           TEXT NOT NULL,
	title          TEXT NOT NULL,
	description    TEXT NOT NULL,
	icon           TEXT NOT NULL,
	stat_happiness INTEGER,
	stat_hunger    INTEGER,
	stat_health    INTEGER,
	stat_stage     INTEGER,
	recorded_at    TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_pet_history_pet ON pet_history(pet_id, recorded_at);
`

// Open abre (o crea) el archivo y aplica el schema. Un solo writer: el
// ledger service ya serializa por mascota, y sqlite serializa el resto.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// el driver es puro Go pero sigue siendo un archivo: un writer a la vez
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
