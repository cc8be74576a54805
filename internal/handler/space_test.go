package handler_test

import (
	"database/sql/driver"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadalt0/Space/internal/handler"
	"github.com/cadalt0/Space/internal/repository"
)

const testStakeAddr = "HiTfqcaU6XwKVYcudqCLAZKzCFjCyXQxZ1LQkn2PcEks"

func newSpaceHandler(t *testing.T) (*handler.SpaceHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return handler.NewSpaceHandler(
		repository.NewSpaceRepo(db, testStakeAddr),
		repository.NewShopRepo(db),
	), mock
}

func spaceCols() []string {
	return []string{"id", "space_id", "space_contract_id", "title", "description", "date",
		"location", "location_link", "features_enabled", "admins", "artwork", "background",
		"tags", "upvotes", "downvotes", "stake_address", "created_at", "updated_at"}
}

func spaceRowVals(id int64, spaceID string) []driver.Value {
	return []driver.Value{id, spaceID, nil, "Title", nil, nil, nil, nil,
		`[]`, `[]`, nil, nil, `[]`, 0, 0,
		testStakeAddr, "2025-01-01 00:00:00", "2025-01-01 00:00:00"}
}

func TestSpaceUpsert(t *testing.T) {
	t.Run("missing spaceId", func(t *testing.T) {
		h, _ := newSpaceHandler(t)
		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/spaces", `{"title":"My Space"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "spaceId is required", decodeBody(t, rec)["error"])
	})

	t.Run("creates when absent", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()))
		mock.ExpectExec("INSERT INTO spaces").
			WithArgs("space-1", nil, "My Space", nil, nil, nil, nil, "[]", "[]", nil, nil, "[]", 0, 0, testStakeAddr).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/spaces",
			`{"spaceId":"space-1","title":"My Space"}`, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Space created successfully", body["message"])
		require.Contains(t, body, "space")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stray payload keys never reach the update", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))
		mock.ExpectExec(`UPDATE spaces SET title = \?, updated_at = CURRENT_TIMESTAMP WHERE space_id = \?`).
			WithArgs("Renamed", "space-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/spaces",
			`{"spaceId":"space-1","title":"Renamed","bogus":"x"}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Space updated successfully", decodeBody(t, rec)["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSpaceGet(t *testing.T) {
	h, mock := newSpaceHandler(t)
	mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(spaceCols()))

	rec := doJSON(t, h.Get, http.MethodGet, "/api/spaces/ghost", "", map[string]string{"spaceId": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Space not found", decodeBody(t, rec)["error"])
}

func TestSpacePatch(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		h, _ := newSpaceHandler(t)
		rec := doJSON(t, h.Patch, http.MethodPatch, "/api/spaces/space-1", `{}`,
			map[string]string{"spaceId": "space-1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No update data provided", decodeBody(t, rec)["error"])
	})

	t.Run("updates only provided fields", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))
		mock.ExpectExec(`UPDATE spaces SET title = \?, updated_at = CURRENT_TIMESTAMP WHERE space_id = \?`).
			WithArgs("Renamed", "space-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))

		rec := doJSON(t, h.Patch, http.MethodPatch, "/api/spaces/space-1",
			`{"title":"Renamed"}`, map[string]string{"spaceId": "space-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Space updated successfully", decodeBody(t, rec)["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSpaceDelete(t *testing.T) {
	t.Run("returns the deleted row", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(spaceCols()).AddRow(spaceRowVals(1, "space-1")...))
		mock.ExpectExec("DELETE FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		rec := doJSON(t, h.Delete, http.MethodDelete, "/api/spaces/space-1", "",
			map[string]string{"spaceId": "space-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Space deleted successfully", body["message"])
		require.Contains(t, body, "deletedSpace")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing space", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM spaces WHERE space_id = ?").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(spaceCols()))

		rec := doJSON(t, h.Delete, http.MethodDelete, "/api/spaces/ghost", "",
			map[string]string{"spaceId": "ghost"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSpaceListShops(t *testing.T) {
	t.Run("404 when the space is missing", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("SELECT space_id FROM spaces WHERE space_id = ?").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"space_id"}))

		rec := doJSON(t, h.ListShops, http.MethodGet, "/api/spaces/ghost/shops", "",
			map[string]string{"spaceId": "ghost"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Space not found", decodeBody(t, rec)["error"])
	})

	t.Run("lists with envelope", func(t *testing.T) {
		h, mock := newSpaceHandler(t)
		mock.ExpectQuery("SELECT space_id FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows([]string{"space_id"}).AddRow("space-1"))
		cols := append(shopRowCols(), "title", "description")
		mock.ExpectQuery("(?s)SELECT (.+) FROM shops s").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				1, "s1", "Shop", nil, "space-1", 0, 0, "[]", nil, nil,
				"2025-01-01 00:00:00", "2025-01-01 00:00:00", "Title", nil))

		rec := doJSON(t, h.ListShops, http.MethodGet, "/api/spaces/space-1/shops", "",
			map[string]string{"spaceId": "space-1"})
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "space-1", body["space_id"])
		assert.Equal(t, float64(1), body["count"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
