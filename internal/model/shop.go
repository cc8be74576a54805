package model

// Shop is an onchain shop hosted inside a space.  Unlike the other room
// kinds a shop cannot exist without its parent: space_id is NOT NULL
// and deletion of the space cascades to its shops.  Rows in the `shops`
// table.
type Shop struct {
	ID           uint64  `json:"id"`            // shops.id
	ShopID       string  `json:"shop_id"`       // shops.shop_id (unique, immutable)
	Name         string  `json:"name"`          // shops.name
	Description  *string `json:"description"`   // shops.description
	SpaceID      string  `json:"space_id"`      // shops.space_id (FK, ON DELETE CASCADE)
	Up           int     `json:"up"`            // shops.up
	Down         int     `json:"down"`          // shops.down
	Tags         List    `json:"tags"`          // shops.tags
	Location     *string `json:"location"`      // shops.location
	LocationLink *string `json:"location_link"` // shops.location_link
	CreatedAt    string  `json:"created_at"`    // shops.created_at
	UpdatedAt    string  `json:"updated_at"`    // shops.updated_at
}

// ShopWithSpace is a shop row joined with its parent space via a
// one-sided outer join, used by lookup and listing endpoints.
type ShopWithSpace struct {
	Shop
	SpaceTitle       *string `json:"space_title"`
	SpaceDescription *string `json:"space_description"`
}
