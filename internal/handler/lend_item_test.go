package handler_test

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadalt0/Space/internal/handler"
	"github.com/cadalt0/Space/internal/repository"
)

func newLendItemHandler(t *testing.T) (*handler.LendItemHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return handler.NewLendItemHandler(
		repository.NewLendItemRepo(db),
		repository.NewSpaceRepo(db, testStakeAddr),
	), mock
}

func lendItemRowCols() []string {
	return []string{"id", "item_id", "name", "description", "owner", "available",
		"up", "down", "tags", "image", "space_id", "created_at", "updated_at"}
}

func TestLendItemUpsert(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		h, _ := newLendItemHandler(t)
		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/lend-items",
			`{"id":"i1","name":"Drill"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "id, name, and owner are required", decodeBody(t, rec)["error"])
	})

	t.Run("named parent space must exist", func(t *testing.T) {
		h, mock := newLendItemHandler(t)
		mock.ExpectQuery("SELECT space_id FROM spaces WHERE space_id = ?").
			WithArgs("ghost-space").
			WillReturnRows(sqlmock.NewRows([]string{"space_id"}))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/lend-items",
			`{"id":"i1","name":"Drill","owner":"a@b.c","spaceId":"ghost-space"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Space not found. Create the space first.", decodeBody(t, rec)["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates without a space, skipping the parent check", func(t *testing.T) {
		h, mock := newLendItemHandler(t)
		// No spaces query: the first statement is the item lookup.
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li").
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows(append(lendItemRowCols(), "title", "description")))
		mock.ExpectExec("INSERT INTO lend_items").
			WithArgs("i1", "Drill", nil, "a@b.c", true, 0, 0, "[]", nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li WHERE li.item_id = ?").
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows(lendItemRowCols()).
				AddRow(1, "i1", "Drill", nil, "a@b.c", true, 0, 0, "[]", nil, nil,
					"2025-01-01 00:00:00", "2025-01-01 00:00:00"))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/lend-items",
			`{"id":"i1","name":"Drill","owner":"a@b.c"}`, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Lend item created successfully", body["message"])
		item := body["item"].(map[string]any)
		assert.Equal(t, "i1", item["item_id"])
		assert.Equal(t, true, item["available"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates when present", func(t *testing.T) {
		h, mock := newLendItemHandler(t)
		mock.ExpectQuery("SELECT space_id FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows([]string{"space_id"}).AddRow("space-1"))
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li").
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows(append(lendItemRowCols(), "title", "description")).
				AddRow(1, "i1", "Drill", nil, "a@b.c", true, 0, 0, "[]", nil, "space-1",
					"2025-01-01 00:00:00", "2025-01-01 00:00:00", "Title", nil))
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li WHERE li.item_id = ?").
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows(lendItemRowCols()).
				AddRow(1, "i1", "Drill", nil, "a@b.c", true, 0, 0, "[]", nil, "space-1",
					"2025-01-01 00:00:00", "2025-01-01 00:00:00"))
		mock.ExpectExec(`UPDATE lend_items SET available = \?, name = \?, owner = \?, space_id = \?, updated_at = CURRENT_TIMESTAMP WHERE item_id = \?`).
			WithArgs(false, "Drill", "a@b.c", "space-1", "i1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li WHERE li.item_id = ?").
			WithArgs("i1").
			WillReturnRows(sqlmock.NewRows(lendItemRowCols()).
				AddRow(1, "i1", "Drill", nil, "a@b.c", false, 0, 0, "[]", nil, "space-1",
					"2025-01-01 00:00:00", "2025-01-01 00:00:00"))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/lend-items",
			`{"id":"i1","name":"Drill","owner":"a@b.c","spaceId":"space-1","available":false}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Lend item updated successfully", body["message"])
		item := body["item"].(map[string]any)
		assert.Equal(t, false, item["available"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLendItemList(t *testing.T) {
	t.Run("spaceId filter adds the envelope field", func(t *testing.T) {
		h, mock := newLendItemHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows(append(lendItemRowCols(), "title", "description")).
				AddRow(1, "i1", "Drill", nil, "a@b.c", true, 0, 0, "[]", nil, "space-1",
					"2025-01-01 00:00:00", "2025-01-01 00:00:00", "Title", nil))

		rec := doJSON(t, h.List, http.MethodGet, "/api/lend-items?spaceId=space-1", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "space-1", body["space_id"])
		assert.Equal(t, float64(1), body["count"])
		require.Len(t, body["items"], 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unfiltered list omits it", func(t *testing.T) {
		h, mock := newLendItemHandler(t)
		mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li").
			WillReturnRows(sqlmock.NewRows(append(lendItemRowCols(), "title", "description")))

		rec := doJSON(t, h.List, http.MethodGet, "/api/lend-items", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.NotContains(t, body, "space_id")
		assert.Equal(t, float64(0), body["count"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLendItemDelete(t *testing.T) {
	h, mock := newLendItemHandler(t)
	mock.ExpectQuery("(?s)SELECT (.+) FROM lend_items li WHERE li.item_id = ?").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(lendItemRowCols()))

	rec := doJSON(t, h.Delete, http.MethodDelete, "/api/lend-items/ghost", "",
		map[string]string{"id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Lend item not found", decodeBody(t, rec)["error"])
}
