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

func newShopHandler(t *testing.T) (*handler.ShopHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return handler.NewShopHandler(repository.NewShopRepo(db), repository.NewSpaceRepo(db, "addr")), mock
}

func shopRowCols() []string {
	return []string{"id", "shop_id", "name", "description", "space_id", "up", "down",
		"tags", "location", "location_link", "created_at", "updated_at"}
}

func TestShopUpsert(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		h, _ := newShopHandler(t)
		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/shops", `{"shopId":"s1","name":"Shop"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "shopId, name, and spaceId are required", decodeBody(t, rec)["error"])
	})

	t.Run("parent space must exist before any write", func(t *testing.T) {
		h, mock := newShopHandler(t)
		mock.ExpectQuery("SELECT space_id FROM spaces WHERE space_id = ?").
			WithArgs("ghost-space").
			WillReturnRows(sqlmock.NewRows([]string{"space_id"}))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/shops",
			`{"shopId":"s1","name":"Shop","spaceId":"ghost-space"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Space not found. Create the space first.", decodeBody(t, rec)["error"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates when absent", func(t *testing.T) {
		h, mock := newShopHandler(t)
		mock.ExpectQuery("SELECT space_id FROM spaces WHERE space_id = ?").
			WithArgs("space-1").
			WillReturnRows(sqlmock.NewRows([]string{"space_id"}).AddRow("space-1"))
		// Lookup for the shop itself comes back empty.
		mock.ExpectQuery("(?s)SELECT (.+) FROM shops s").
			WithArgs("s1").
			WillReturnRows(sqlmock.NewRows(append(shopRowCols(), "title", "description")))
		mock.ExpectExec("INSERT INTO shops").
			WithArgs("s1", "Shop", nil, "space-1", 0, 0, "[]", nil, nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("(?s)SELECT (.+) FROM shops s WHERE s.shop_id = ?").
			WithArgs("s1").
			WillReturnRows(sqlmock.NewRows(shopRowCols()).
				AddRow(1, "s1", "Shop", nil, "space-1", 0, 0, "[]", nil, nil,
					"2025-01-01 00:00:00", "2025-01-01 00:00:00"))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/shops",
			`{"shopId":"s1","name":"Shop","spaceId":"space-1"}`, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Shop created successfully", body["message"])
		shop := body["shop"].(map[string]any)
		assert.Equal(t, "s1", shop["shop_id"])
		assert.Equal(t, []any{}, shop["tags"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShopGetJoinsParentSpace(t *testing.T) {
	h, mock := newShopHandler(t)
	mock.ExpectQuery("(?s)SELECT (.+) FROM shops s").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(append(shopRowCols(), "title", "description")).
			AddRow(1, "s1", "Shop", nil, "space-1", 2, 0, `["books"]`, nil, nil,
				"2025-01-01 00:00:00", "2025-01-01 00:00:00", "Space Title", "Space Desc"))

	rec := doJSON(t, h.Get, http.MethodGet, "/api/shops/s1", "", map[string]string{"shopId": "s1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	shop := decodeBody(t, rec)["shop"].(map[string]any)
	assert.Equal(t, "Space Title", shop["space_title"])
	assert.Equal(t, "Space Desc", shop["space_description"])
	assert.Equal(t, []any{"books"}, shop["tags"])
}

func TestShopDelete(t *testing.T) {
	h, mock := newShopHandler(t)
	mock.ExpectQuery("(?s)SELECT (.+) FROM shops s WHERE s.shop_id = ?").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(shopRowCols()).
			AddRow(1, "s1", "Shop", nil, "space-1", 0, 0, "[]", nil, nil,
				"2025-01-01 00:00:00", "2025-01-01 00:00:00"))
	mock.ExpectExec("DELETE FROM shops WHERE shop_id = ?").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doJSON(t, h.Delete, http.MethodDelete, "/api/shops/s1", "", map[string]string{"shopId": "s1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Shop deleted successfully", body["message"])
	assert.NotNil(t, body["deletedShop"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
