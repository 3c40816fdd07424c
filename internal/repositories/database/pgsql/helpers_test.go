package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/gjovanov/tickytack/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTimestampColumn(t *testing.T) {
	col, err := statusTimestampColumn(domain.Posted)
	require.NoError(t, err)
	assert.Equal(t, "posted_at", col)

	col, err = statusTimestampColumn(domain.Voided)
	require.NoError(t, err)
	assert.Equal(t, "voided_at", col)

	_, err = statusTimestampColumn(domain.Draft)
	assert.ErrorIs(t, err, errUnknownTargetStatus)
}

func TestGroupLines(t *testing.T) {
	grouped := groupLines([]models.JournalEntryLine{
		{EntryID: "a", LineNo: 1, AccountID: "cash"},
		{EntryID: "a", LineNo: 2, AccountID: "sales"},
		{EntryID: "b", LineNo: 1, AccountID: "rent"},
	})
	require.Len(t, grouped, 2)
	require.Len(t, grouped["a"], 2)
	assert.Equal(t, "sales", grouped["a"][1].AccountID)
	assert.Equal(t, "rent", grouped["b"][0].AccountID)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(dup))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
