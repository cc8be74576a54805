package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadalt0/Space/internal/handler"
)

func TestHealthCheck(t *testing.T) {
	t.Run("connected", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing()

		h := handler.NewHealthHandler(db)
		rec := doJSON(t, h.Check, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "OK", body["status"])
		assert.Equal(t, "Connected", body["database"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("disconnected", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		h := handler.NewHealthHandler(db)
		rec := doJSON(t, h.Check, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "ERROR", body["status"])
		assert.Equal(t, "Disconnected", body["database"])
	})
}
