package entity_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffdir/internal/domain"
	"github.com/jhoicas/staffdir/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados: Active ⇄ Trashed, ambos → Erased (terminal).
// ──────────────────────────────────────────────────────────────────────────────

func TestTransition_TablaCompleta(t *testing.T) {
	cases := []struct {
		name    string
		from    entity.State
		mode    entity.Mode
		want    entity.State
		wantErr error
	}{
		{"trash activo", entity.StateActive, entity.ModeTrash, entity.StateTrashed, nil},
		{"restore en papelera", entity.StateTrashed, entity.ModeRestore, entity.StateActive, nil},
		{"erase activo", entity.StateActive, entity.ModeErase, entity.StateErased, nil},
		{"erase en papelera", entity.StateTrashed, entity.ModeErase, entity.StateErased, nil},
		{"trash dos veces", entity.StateTrashed, entity.ModeTrash, entity.StateTrashed, domain.ErrInvalidTransition},
		{"restore activo", entity.StateActive, entity.ModeRestore, entity.StateActive, domain.ErrInvalidTransition},
		{"erased es terminal", entity.StateErased, entity.ModeRestore, entity.StateErased, domain.ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := entity.Transition(tc.from, tc.mode)
			assert.Equal(t, tc.want, got)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, domain.ErrConflict, "una transición inválida es un conflicto")
		})
	}
}

func TestTransition_ModoDesconocidoEsValidacion(t *testing.T) {
	_, err := entity.Transition(entity.StateActive, entity.Mode("purge"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseMode(t *testing.T) {
	for _, raw := range []string{"erase", "trash", "restore", " TRASH "} {
		_, err := entity.ParseMode(raw)
		assert.NoError(t, err, raw)
	}

	_, err := entity.ParseMode("bogus")
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "mode", verr.Fields[0].Field)

	_, err = entity.ParseMode("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStateOf(t *testing.T) {
	now := time.Now()
	assert.Equal(t, entity.StateActive, entity.StateOf(nil))
	assert.Equal(t, entity.StateTrashed, entity.StateOf(&now))
	assert.Equal(t, "trashed", entity.StateTrashed.String())
}

func TestParseDate(t *testing.T) {
	d, ok := entity.ParseDate("2001-03-04")
	require.True(t, ok)
	assert.Equal(t, time.Date(2001, 3, 4, 0, 0, 0, 0, time.UTC), d)

	d, ok = entity.ParseDate("2001-03-04T22:10:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2001, 3, 4, 0, 0, 0, 0, time.UTC), d)

	_, ok = entity.ParseDate("04/03/2001")
	assert.False(t, ok)
}
