package repositories

import (
	"math"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusclubs/internal/app/models"
)

func TestOffset(t *testing.T) {
	assert.Equal(t, uint64(0), offset(1, 20))
	assert.Equal(t, uint64(0), offset(0, 20))
	assert.Equal(t, uint64(40), offset(3, 20))
	assert.LessOrEqual(t, offset(math.MaxInt/12+2, 12), uint64(math.MaxInt32))
}

func TestApplyEventFilter(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	q := applyEventFilter(psql.Select("e.id").From("events e"), models.EventFilter{Search: "go", From: &from, ClubID: 4})

	sql, args, err := q.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT e.id FROM events e WHERE (e.title ILIKE $1 OR e.description ILIKE $2) AND e.event_date >= $3 AND e.club_id = $4", sql)
	assert.Equal(t, []interface{}{"%go%", "%go%", from, int64(4)}, args)
}

func TestApplyEventFilter_Empty(t *testing.T) {
	sql, args, err := applyEventFilter(psql.Select("e.id").From("events e"), models.EventFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT e.id FROM events e", sql)
	assert.Empty(t, args)
}

func TestApplyClubUpdate_SkipsNil(t *testing.T) {
	name := "Satranç"
	status := models.ClubStatusActive
	sql, args, err := applyClubUpdate(psql.Update("clubs"), models.ClubUpdate{Name: &name, Status: &status}).
		Where(squirrel.Eq{"id": 1}).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE clubs SET name = $1, status = $2 WHERE id = $3", sql)
	assert.Equal(t, []interface{}{"Satranç", models.ClubStatusActive, 1}, args)
}

func TestSelectClubs_FiltersDeleted(t *testing.T) {
	sql, _, err := selectClubs().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LEFT JOIN users p ON p.id = c.president_id")
	assert.Contains(t, sql, "WHERE c.is_deleted = $1")
}
