package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadalt0/Space/internal/model"
)

func jsonResp(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAPIClientErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/sns/ghost@example.com":
			jsonResp(w, http.StatusNotFound, map[string]string{"error": "Email not found"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/sns":
			jsonResp(w, http.StatusBadRequest, map[string]string{"error": "Email and SNS ID are required"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/spaces/boom":
			jsonResp(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	ctx := context.Background()

	_, err := c.GetUser(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Email not found")

	_, _, err = c.UpsertUser(ctx, "", "", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Email and SNS ID are required")

	_, err = c.GetSpace(ctx, "boom")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Internal server error")
}

func TestAPIClientUpsertCreatedFlag(t *testing.T) {
	created := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/spaces", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "space-1", body["spaceId"])
		require.Equal(t, "My Space", body["title"])

		status := http.StatusOK
		msg := "Space updated successfully"
		if created {
			status = http.StatusCreated
			msg = "Space created successfully"
		}
		jsonResp(w, status, map[string]any{
			"message": msg,
			"space":   model.Space{SpaceID: "space-1"},
		})
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	ctx := context.Background()
	fields := map[string]any{"title": "My Space"}

	sp, wasCreated, err := c.UpsertSpace(ctx, "space-1", fields)
	require.NoError(t, err)
	assert.True(t, wasCreated)
	assert.Equal(t, "space-1", sp.SpaceID)

	created = false
	_, wasCreated, err = c.UpsertSpace(ctx, "space-1", fields)
	require.NoError(t, err)
	assert.False(t, wasCreated)

	// The caller's payload map must not pick up the key overlay.
	assert.NotContains(t, fields, "spaceId")
}

func TestAPIClientListEnvelopes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/lend-items":
			require.Equal(t, "space-1", r.URL.Query().Get("spaceId"))
			jsonResp(w, http.StatusOK, map[string]any{
				"space_id": "space-1",
				"items": []model.LendItemWithSpace{
					{LendItem: model.LendItem{ItemID: "i1", Name: "Drill", Owner: "alice"}},
				},
				"count": 1,
			})
		case "/api/spaces/space-1/shops":
			jsonResp(w, http.StatusOK, map[string]any{
				"space_id": "space-1",
				"shops":    []model.ShopWithSpace{{Shop: model.Shop{ShopID: "s1", SpaceID: "space-1"}}},
				"count":    1,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL)
	ctx := context.Background()

	items, err := c.ListLendItems(ctx, "space-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Drill", items[0].Name)

	shops, err := c.ListSpaceShops(ctx, "space-1")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "s1", shops[0].ShopID)
}

// flakyStore fails the first N shop patches, standing in for a database
// that recovers while a confirmed vote is being recorded.
type flakyStore struct {
	*MockStore
	failures int
	calls    int
}

func (f *flakyStore) PatchShop(ctx context.Context, shopID string, fields map[string]any) (*model.Shop, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, errors.New("deadlock found when trying to get lock")
	}
	return f.MockStore.PatchShop(ctx, shopID, fields)
}

func newFlakyStore(t *testing.T, failures int) *flakyStore {
	t.Helper()
	m := NewMockStore()
	ctx := context.Background()
	_, _, err := m.UpsertSpace(ctx, "space-1", nil)
	require.NoError(t, err)
	_, _, err = m.UpsertShop(ctx, "s1", "Shop", "space-1", nil)
	require.NoError(t, err)
	return &flakyStore{MockStore: m, failures: failures}
}

func TestRecordVoteRetries(t *testing.T) {
	ctx := context.Background()

	t.Run("recovers within budget", func(t *testing.T) {
		s := newFlakyStore(t, 2)
		require.NoError(t, RecordVote(ctx, s, VoteShop, "s1", Up))
		assert.Equal(t, 3, s.calls)

		shop, err := s.GetShop(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 1, shop.Up)
	})

	t.Run("gives up after three attempts", func(t *testing.T) {
		s := newFlakyStore(t, 10)
		err := RecordVote(ctx, s, VoteShop, "s1", Up)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record vote after 3 attempts")
		assert.Equal(t, 3, s.calls)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		s := newFlakyStore(t, 10)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := RecordVote(cctx, s, VoteShop, "s1", Up)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, s.calls, "no retry after cancellation")
	})
}
