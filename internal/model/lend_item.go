package model

// LendItem is an item offered on a space's lending board.  The space
// reference is optional; when the parent space is deleted the item
// survives with space_id set to NULL rather than pointing at a missing
// row.  Rows in the `lend_items` table.
type LendItem struct {
	ID          uint64  `json:"id"`          // lend_items.id
	ItemID      string  `json:"item_id"`     // lend_items.item_id (unique, immutable)
	Name        string  `json:"name"`        // lend_items.name
	Description *string `json:"description"` // lend_items.description
	Owner       string  `json:"owner"`       // lend_items.owner
	Available   bool    `json:"available"`   // lend_items.available (defaults true)
	Up          int     `json:"up"`          // lend_items.up
	Down        int     `json:"down"`        // lend_items.down
	Tags        List    `json:"tags"`        // lend_items.tags
	Image       *string `json:"image"`       // lend_items.image
	SpaceID     *string `json:"space_id"`    // lend_items.space_id (FK, ON DELETE SET NULL)
	CreatedAt   string  `json:"created_at"`  // lend_items.created_at
	UpdatedAt   string  `json:"updated_at"`  // lend_items.updated_at
}

// LendItemWithSpace is a lend item joined with its parent space title
// and description; both are NULL for orphaned items.
type LendItemWithSpace struct {
	LendItem
	SpaceTitle       *string `json:"space_title"`
	SpaceDescription *string `json:"space_description"`
}
