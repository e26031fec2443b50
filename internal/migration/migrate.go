package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
)

// Run executes every migration step in order against the given pool.  Steps
// are independent: a failure aborts the run but leaves the schema in a valid
// partial state, since each step is individually idempotent.  Progress is
// reported through human-readable log lines only.
func Run(ctx context.Context, db *sql.DB) error {
	for _, t := range createTableStatements {
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("crear tabla %s: %w", t.name, err)
		}
		log.Printf("migracion: tabla %s verificada/creada", t.name)
	}

	for _, s := range seedStatements {
		if _, err := db.ExecContext(ctx, s); err != nil {
			if !isDuplicateErr(err) {
				return fmt.Errorf("sembrar datos base: %w", err)
			}
			log.Printf("migracion: datos base ya existentes (ignorado)")
		}
	}
	log.Printf("migracion: roles y permisos verificados")

	if err := addMissingColumns(ctx, db, "usuarios", usuarioPESVColumns); err != nil {
		return err
	}
	if err := addMissingColumns(ctx, db, "vehiculos", vehiculoPESVColumns); err != nil {
		return err
	}

	for _, idx := range indexSpecs {
		exists, err := indexExists(ctx, db, idx.table, idx.name)
		if err != nil {
			return fmt.Errorf("verificar indice %s.%s: %w", idx.table, idx.name, err)
		}
		if exists {
			continue
		}
		if _, err := db.ExecContext(ctx, idx.ddl); err != nil {
			if isDuplicateErr(err) {
				log.Printf("migracion: indice %s.%s ya existe (ignorado)", idx.table, idx.name)
				continue
			}
			return fmt.Errorf("crear indice %s.%s: %w", idx.table, idx.name, err)
		}
		log.Printf("migracion: indice %s.%s creado", idx.table, idx.name)
	}

	log.Printf("migracion: esquema al dia")
	return nil
}

// addMissingColumns introspects the table with DESCRIBE and applies only
// the ADD COLUMN clauses whose column is absent.  A concurrent duplicate is
// tolerated as success-with-notice.
func addMissingColumns(ctx context.Context, db *sql.DB, table string, specs []columnSpec) error {
	existing, err := tableColumns(ctx, db, table)
	if err != nil {
		return fmt.Errorf("describir %s: %w", table, err)
	}
	missing := missingColumns(existing, specs)
	if len(missing) == 0 {
		log.Printf("migracion: columnas PESV de %s completas", table)
		return nil
	}
	for _, spec := range missing {
		if _, err := db.ExecContext(ctx, "ALTER TABLE "+table+" "+spec.ddl); err != nil {
			if isDuplicateErr(err) {
				log.Printf("migracion: columna %s.%s ya existe (ignorado)", table, spec.name)
				continue
			}
			return fmt.Errorf("agregar columna %s.%s: %w", table, spec.name, err)
		}
		log.Printf("migracion: columna %s.%s agregada", table, spec.name)
	}
	return nil
}

// tableColumns returns the column names of a table from DESCRIBE output.
func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "DESCRIBE "+table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var field, typ string
		var null, key, def, extra sql.NullString
		if err := rows.Scan(&field, &typ, &null, &key, &def, &extra); err != nil {
			return nil, err
		}
		cols = append(cols, field)
	}
	return cols, rows.Err()
}

// indexExists checks INFORMATION_SCHEMA.STATISTICS for an index name on a
// table in the current schema.
func indexExists(ctx context.Context, db *sql.DB, table, index string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM INFORMATION_SCHEMA.STATISTICS
		 WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?`,
		table, index).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// missingColumns filters specs down to those whose column is not already
// present.  Pure helper, split out so the diffing logic is testable without
// a database.
func missingColumns(existing []string, specs []columnSpec) []columnSpec {
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c] = true
	}
	var out []columnSpec
	for _, s := range specs {
		if !have[s.name] {
			out = append(out, s)
		}
	}
	return out
}

// isDuplicateErr reports whether err is one of the MySQL "already there"
// errors: 1060 duplicate column, 1061 duplicate key name, 1062 duplicate
// entry.  Migration steps treat these as success-with-notice.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, code := range []string{"1060", "1061", "1062"} {
		if strings.Contains(msg, "Error "+code) || strings.Contains(msg, "("+code+")") || strings.Contains(msg, code+":") {
			return true
		}
	}
	// The driver formats errors as "Error 1060 (42S21): ..."; the checks
	// above cover that plus raw server strings.
	return false
}
