package utils

import (
	"testing"

	"jobplanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlinePaginationKeyboard(t *testing.T) {
	assert.Empty(t, InlinePaginationKeyboard(0, 1).InlineKeyboard)

	first := InlinePaginationKeyboard(0, 3).InlineKeyboard
	require.Len(t, first, 1)
	require.Len(t, first[0], 2)
	assert.Equal(t, "1/3", first[0][0].Text)
	assert.Equal(t, "jobs_page:1", first[0][1].Unique)

	middle := InlinePaginationKeyboard(1, 3).InlineKeyboard
	require.Len(t, middle[0], 3)
	assert.Equal(t, "jobs_page:0", middle[0][0].Unique)
	assert.Equal(t, "jobs_page:2", middle[0][2].Unique)

	last := InlinePaginationKeyboard(2, 3).InlineKeyboard
	require.Len(t, last[0], 2)
	assert.Equal(t, "3/3", last[0][1].Text)
}

func TestInlineJobKeyboard(t *testing.T) {
	job := models.JobRecord{ID: "42", RedirectURL: "https://example.com/42"}

	row := InlineJobKeyboard(job, false).InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, "https://example.com/42", row[0].URL)
	assert.Equal(t, "save:42", row[1].Unique)

	row = InlineJobKeyboard(models.JobRecord{ID: "42"}, true).InlineKeyboard[0]
	require.Len(t, row, 1)
	assert.Equal(t, "unsave:42", row[0].Unique)
}

func TestInlineExportKeyboard(t *testing.T) {
	row := InlineExportKeyboard().InlineKeyboard[0]
	require.Len(t, row, 3)
	assert.Equal(t, "export:json", row[0].Unique)
	assert.Equal(t, "export:csv", row[1].Unique)
	assert.Equal(t, "export:txt", row[2].Unique)
}

func TestInlineSavedKeyboards(t *testing.T) {
	ask := InlineSavedKeyboard().InlineKeyboard
	require.Len(t, ask, 1)
	assert.Equal(t, "saved_clear:ask", ask[0][0].Unique)

	confirm := InlineClearSavedConfirmKeyboard().InlineKeyboard[0]
	require.Len(t, confirm, 2)
	assert.Equal(t, "saved_clear:yes", confirm[0].Unique)
	assert.Equal(t, ActionNoop, confirm[1].Unique)
}

func TestCategoryKeyboard(t *testing.T) {
	rows := CategoryKeyboard().ReplyKeyboard

	// Two categories per row plus the cancel row.
	assert.Len(t, rows, (len(models.CategoryOptions())+1)/2+1)
	assert.Equal(t, models.CategoryIT.Label(), rows[0][0].Text)
	assert.Equal(t, BtnCancel, rows[len(rows)-1][0].Text)
}

func TestPeriodKeyboard(t *testing.T) {
	rows := PeriodKeyboard().ReplyKeyboard

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Today", "Past week"}, []string{rows[0][0].Text, rows[0][1].Text})
	assert.Equal(t, []string{"Past month", BtnAnyTime}, []string{rows[1][0].Text, rows[1][1].Text})
}
