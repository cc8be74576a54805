package model

// Space is a community that hosts the four room kinds (shops, lend
// items, requests, hangouts).  Each space is keyed by an
// application-chosen string id, distinct from the auto-increment
// primary key, and is the parent of room rows via that id.  Rows in the
// `spaces` table.
//
// Optional free-text columns are pointers so that NULL survives JSON
// round trips unchanged.  FeaturesEnabled/Admins/Tags are serialized
// JSON arrays; order is preserved but only the first enabled feature is
// semantically meaningful (default UI section).
type Space struct {
	ID              uint64  `json:"id"`                // spaces.id
	SpaceID         string  `json:"space_id"`          // spaces.space_id (unique, immutable)
	ContractID      *string `json:"space_contract_id"` // spaces.space_contract_id
	Title           *string `json:"title"`             // spaces.title
	Description     *string `json:"description"`       // spaces.description
	Date            *string `json:"date"`              // spaces.date
	Location        *string `json:"location"`          // spaces.location
	LocationLink    *string `json:"location_link"`     // spaces.location_link
	FeaturesEnabled List    `json:"features_enabled"`  // spaces.features_enabled (shop|lend|request|hangout tags)
	Admins          List    `json:"admins"`            // spaces.admins (ordered identifiers)
	Artwork         *string `json:"artwork"`           // spaces.artwork
	Background      *string `json:"background"`        // spaces.background
	Tags            List    `json:"tags"`              // spaces.tags
	Upvotes         int     `json:"upvotes"`           // spaces.upvotes
	Downvotes       int     `json:"downvotes"`         // spaces.downvotes
	StakeAddress    *string `json:"stake_address"`     // spaces.stake_address
	CreatedAt       string  `json:"created_at"`        // spaces.created_at
	UpdatedAt       string  `json:"updated_at"`        // spaces.updated_at
}
