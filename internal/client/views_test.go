package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadalt0/Space/internal/model"
)

func TestViewConversions(t *testing.T) {
	desc := "About"
	sp := SpaceViewFrom(&model.Space{
		SpaceID:     "space-1",
		Description: &desc,
		Upvotes:     3,
	})
	assert.Equal(t, "space-1", sp.ID)
	assert.Equal(t, "About", sp.Desc)
	assert.Equal(t, "", sp.Title, "null text collapses to empty")
	assert.NotNil(t, sp.Tags, "collections are never nil")

	it := ItemViewFrom(&model.LendItemWithSpace{
		LendItem: model.LendItem{ItemID: "i1", Name: "Drill", Owner: "alice", Available: true},
	})
	assert.Equal(t, "i1", it.ID)
	assert.Equal(t, "", it.SpaceID, "orphaned item renders without a space")

	// The wire names views use: natural key as "id", description as
	// "desc", camel-cased space reference.
	raw, err := json.Marshal(ShopViewFrom(&model.ShopWithSpace{
		Shop: model.Shop{ShopID: "s1", Name: "Shop", SpaceID: "space-1"},
	}))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "s1", out["id"])
	assert.Equal(t, "space-1", out["spaceId"])
	assert.Contains(t, out, "desc")
}
