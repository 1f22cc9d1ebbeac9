package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "1234567890", CreatedAt: "2026-01-02T15:04:05Z"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.Equal(t, "1234567890", cursor.ID)
	assert.Equal(t, "2026-01-02T15:04:05Z", cursor.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("not base64!!")
	assert.Error(t, err)
}

type row struct {
	id int
}

func pageOf(n int) []*row {
	rows := make([]*row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &row{id: i})
	}
	return rows
}

func TestBuildCursorPageInfo(t *testing.T) {
	extract := func(r *row) string { return strconv.Itoa(r.id) }

	// Over-fetched limit+1 rows: has more, cursor points at the last visible row.
	info := BuildCursorPageInfo(pageOf(4), 3, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "2", info.NextPageToken)

	// Exactly limit rows: final page.
	info = BuildCursorPageInfo(pageOf(3), 3, extract)
	assert.False(t, info.HasMore)

	// Empty result.
	info = BuildCursorPageInfo(nil, 3, extract)
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)
}
