package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockStoreUserFlow(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	u, created, err := m.UpsertUser(ctx, "alice@example.com", "alice.sol", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice.sol", u.SNSID)

	// Same email again is an update, not a duplicate.
	u, created, err = m.UpsertUser(ctx, "alice@example.com", "alice2.sol", map[string]any{"stake": 0.5})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "alice2.sol", u.SNSID)
	assert.Equal(t, 0.5, u.Stake)

	users, err := m.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, _, err = m.UpsertUser(ctx, "", "x.sol", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = m.GetUser(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockStoreShopRequiresSpace(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	_, _, err := m.UpsertShop(ctx, "s1", "Shop", "ghost-space", nil)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "Create the space first")

	_, created, err := m.UpsertSpace(ctx, "space-1", map[string]any{"title": "My Space", "description": "About"})
	require.NoError(t, err)
	assert.True(t, created)

	shop, created, err := m.UpsertShop(ctx, "s1", "Shop", "space-1", nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "space-1", shop.SpaceID)

	// Lookup joins the parent space.
	got, err := m.GetShop(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.SpaceTitle)
	assert.Equal(t, "My Space", *got.SpaceTitle)
	require.NotNil(t, got.SpaceDescription)
	assert.Equal(t, "About", *got.SpaceDescription)
}

func TestMockStorePatchSemantics(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	_, _, err := m.UpsertSpace(ctx, "space-1", map[string]any{
		"title":       "Original",
		"description": "Keep me",
		"tags":        []any{"a"},
	})
	require.NoError(t, err)

	_, err = m.PatchSpace(ctx, "space-1", map[string]any{})
	assert.ErrorIs(t, err, ErrValidation)

	sp, err := m.PatchSpace(ctx, "space-1", map[string]any{"title": "Renamed", "upvotes": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", *sp.Title)
	assert.Equal(t, 3, sp.Upvotes)
	// Omitted fields keep their values.
	assert.Equal(t, "Keep me", *sp.Description)
	assert.Equal(t, []string{"a"}, []string(sp.Tags))

	// Collections replace wholesale.
	sp, err = m.PatchSpace(ctx, "space-1", map[string]any{"tags": []any{"b", "c"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, []string(sp.Tags))
}

func TestMockStoreDeleteSpaceAsymmetry(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	_, _, err := m.UpsertSpace(ctx, "space-1", nil)
	require.NoError(t, err)
	_, _, err = m.UpsertShop(ctx, "s1", "Shop", "space-1", nil)
	require.NoError(t, err)
	_, _, err = m.UpsertLendItem(ctx, "i1", "Drill", "alice", map[string]any{"spaceId": "space-1"})
	require.NoError(t, err)
	_, _, err = m.UpsertRequest(ctx, "r1", "Need a ladder", "bob", map[string]any{"spaceId": "space-1"})
	require.NoError(t, err)
	_, _, err = m.UpsertHangout(ctx, "h1", "Picnic", "carol", map[string]any{"spaceId": "space-1"})
	require.NoError(t, err)

	deleted, err := m.DeleteSpace(ctx, "space-1")
	require.NoError(t, err)
	assert.Equal(t, "space-1", deleted.SpaceID)

	// Shops cascade away with the space.
	_, err = m.GetShop(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	// The other room kinds survive, orphaned.
	it, err := m.GetLendItem(ctx, "i1")
	require.NoError(t, err)
	assert.Nil(t, it.SpaceID)
	assert.Nil(t, it.SpaceTitle)

	rq, err := m.GetRequest(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, rq.SpaceID)

	hg, err := m.GetHangout(ctx, "h1")
	require.NoError(t, err)
	assert.Nil(t, hg.SpaceID)

	// Orphans fall out of space-filtered lists but stay in the full list.
	all, err := m.ListLendItems(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
	bySpace, err := m.ListLendItems(ctx, "space-1")
	require.NoError(t, err)
	assert.Empty(t, bySpace)
}

func TestMockStoreListOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	_, _, err := m.UpsertSpace(ctx, "first", nil)
	require.NoError(t, err)
	_, _, err = m.UpsertSpace(ctx, "second", nil)
	require.NoError(t, err)

	spaces, err := m.ListSpaces(ctx)
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	// Newest first.
	assert.Equal(t, "second", spaces[0].SpaceID)
	assert.Equal(t, "first", spaces[1].SpaceID)
}

func TestMockStoreDefaults(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	sp, _, err := m.UpsertSpace(ctx, "space-1", nil)
	require.NoError(t, err)
	assert.NotNil(t, sp.StakeAddress)
	assert.Empty(t, []string(sp.Tags))
	assert.Zero(t, sp.Upvotes)

	it, _, err := m.UpsertLendItem(ctx, "i1", "Drill", "alice", nil)
	require.NoError(t, err)
	assert.True(t, it.Available)
}

func TestApplyVote(t *testing.T) {
	ctx := context.Background()
	m := NewMockStore()

	_, _, err := m.UpsertSpace(ctx, "space-1", nil)
	require.NoError(t, err)
	_, _, err = m.UpsertShop(ctx, "s1", "Shop", "space-1", nil)
	require.NoError(t, err)

	require.NoError(t, ApplyVote(ctx, m, VoteShop, "s1", Up))
	require.NoError(t, ApplyVote(ctx, m, VoteShop, "s1", Up))
	require.NoError(t, ApplyVote(ctx, m, VoteShop, "s1", Down))

	shop, err := m.GetShop(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, shop.Up)
	assert.Equal(t, 1, shop.Down)

	require.NoError(t, ApplyVote(ctx, m, VoteSpace, "space-1", Up))
	sp, err := m.GetSpace(ctx, "space-1")
	require.NoError(t, err)
	assert.Equal(t, 1, sp.Upvotes)

	err = ApplyVote(ctx, m, VoteShop, "ghost", Up)
	assert.ErrorIs(t, err, ErrNotFound)
}
