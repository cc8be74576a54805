package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadalt0/Space/internal/handler"
	"github.com/cadalt0/Space/internal/repository"
)

func newSNSHandler(t *testing.T) (*handler.SNSHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return handler.NewSNSHandler(repository.NewUserRepo(db)), mock
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var rdr *strings.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	} else {
		rdr = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, rdr)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func snsUserRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "sns_id", "stake", "created_at", "updated_at"})
}

func TestSNSUpsert(t *testing.T) {
	t.Run("missing required fields", func(t *testing.T) {
		h, _ := newSNSHandler(t)
		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/sns", `{"email":"a@b.c"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email and SNS ID are required", decodeBody(t, rec)["error"])
	})

	t.Run("empty strings fail the requirement", func(t *testing.T) {
		h, _ := newSNSHandler(t)
		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/sns", `{"email":"","sns_id":"x.sol"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("creates when absent", func(t *testing.T) {
		h, mock := newSNSHandler(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows())
		mock.ExpectExec("INSERT INTO sns_users").
			WithArgs("a@b.c", "alice.sol", 0.0).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows().AddRow(1, "a@b.c", "alice.sol", 0.0, "2025-01-01 00:00:00", "2025-01-01 00:00:00"))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/sns", `{"email":"a@b.c","sns_id":"alice.sol"}`, nil)
		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "SNS ID added successfully", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "alice.sol", user["sns_id"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updates when present", func(t *testing.T) {
		h, mock := newSNSHandler(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows().AddRow(1, "a@b.c", "old.sol", 0.0, "2025-01-01 00:00:00", "2025-01-01 00:00:00"))
		// UpdateFields re-checks existence before writing.
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows().AddRow(1, "a@b.c", "old.sol", 0.0, "2025-01-01 00:00:00", "2025-01-01 00:00:00"))
		mock.ExpectExec("UPDATE sns_users SET").
			WithArgs("new.sol", "a@b.c").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows().AddRow(1, "a@b.c", "new.sol", 0.0, "2025-01-01 00:00:00", "2025-01-02 00:00:00"))

		rec := doJSON(t, h.Upsert, http.MethodPost, "/api/sns", `{"email":"a@b.c","sns_id":"new.sol"}`, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "SNS ID updated successfully", decodeBody(t, rec)["message"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSNSGet(t *testing.T) {
	h, mock := newSNSHandler(t)
	mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
		WithArgs("ghost@b.c").
		WillReturnRows(snsUserRows())

	rec := doJSON(t, h.Get, http.MethodGet, "/api/sns/ghost@b.c", "", map[string]string{"email": "ghost@b.c"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Email not found", decodeBody(t, rec)["error"])
}

func TestSNSPatch(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		h, _ := newSNSHandler(t)
		rec := doJSON(t, h.Patch, http.MethodPatch, "/api/sns/a@b.c", `{}`, map[string]string{"email": "a@b.c"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No update data provided", decodeBody(t, rec)["error"])
	})

	t.Run("unknown user", func(t *testing.T) {
		h, mock := newSNSHandler(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("ghost@b.c").
			WillReturnRows(snsUserRows())

		rec := doJSON(t, h.Patch, http.MethodPatch, "/api/sns/ghost@b.c", `{"stake":1}`, map[string]string{"email": "ghost@b.c"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeBody(t, rec)["error"])
	})

	t.Run("stake update leaves sns_id untouched", func(t *testing.T) {
		h, mock := newSNSHandler(t)
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows().AddRow(1, "a@b.c", "a.sol", 0.0, "2025-01-01 00:00:00", "2025-01-01 00:00:00"))
		mock.ExpectExec(`UPDATE sns_users SET stake = \?, updated_at = CURRENT_TIMESTAMP WHERE email = \?`).
			WithArgs(5.0, "a@b.c").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM sns_users WHERE email = ?").
			WithArgs("a@b.c").
			WillReturnRows(snsUserRows().AddRow(1, "a@b.c", "a.sol", 5.0, "2025-01-01 00:00:00", "2025-01-02 00:00:00"))

		rec := doJSON(t, h.Patch, http.MethodPatch, "/api/sns/a@b.c", `{"stake":5}`, map[string]string{"email": "a@b.c"})
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "SNS user updated successfully", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "a.sol", user["sns_id"])
		assert.Equal(t, float64(5), user["stake"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
