package migration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingColumns(t *testing.T) {
	specs := []columnSpec{
		{name: "numero_licencia", ddl: "ADD COLUMN numero_licencia VARCHAR(20)"},
		{name: "categoria_licencia", ddl: "ADD COLUMN categoria_licencia VARCHAR(5)"},
		{name: "fecha_vencimiento_licencia", ddl: "ADD COLUMN fecha_vencimiento_licencia DATE"},
	}

	tests := []struct {
		name     string
		existing []string
		want     []string
	}{
		{
			name:     "fresh table needs everything",
			existing: []string{"id", "nombre", "email"},
			want:     []string{"numero_licencia", "categoria_licencia", "fecha_vencimiento_licencia"},
		},
		{
			name:     "partially migrated",
			existing: []string{"id", "numero_licencia"},
			want:     []string{"categoria_licencia", "fecha_vencimiento_licencia"},
		},
		{
			name:     "fully migrated",
			existing: []string{"id", "numero_licencia", "categoria_licencia", "fecha_vencimiento_licencia"},
			want:     nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := missingColumns(tc.existing, specs)
			var names []string
			for _, s := range got {
				names = append(names, s.name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestIsDuplicateErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duplicate column", errors.New("Error 1060 (42S21): Duplicate column name 'numero_licencia'"), true},
		{"duplicate key", errors.New("Error 1061 (42000): Duplicate key name 'idx_insp_estado'"), true},
		{"duplicate entry", errors.New("Error 1062 (23000): Duplicate entry 'ana@empresa.co' for key 'email'"), true},
		{"unrelated error", errors.New("Error 1146 (42S02): Table 'pesv_db.usuarios' doesn't exist"), false},
		{"plain error", errors.New("connection refused"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDuplicateErr(tc.err))
		})
	}
}
