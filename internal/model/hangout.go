package model

// Hangout is a scheduled meetup hosted by a member of a space.  Rows in
// the `hangouts` table.
type Hangout struct {
	ID          uint64  `json:"id"`          // hangouts.id
	HangID      string  `json:"hang_id"`     // hangouts.hang_id (unique, immutable)
	Title       string  `json:"title"`       // hangouts.title
	Description *string `json:"description"` // hangouts.description
	Date        *string `json:"date"`        // hangouts.date
	Location    *string `json:"location"`    // hangouts.location
	Host        string  `json:"host"`        // hangouts.host
	Up          int     `json:"up"`          // hangouts.up
	Down        int     `json:"down"`        // hangouts.down
	Tags        List    `json:"tags"`        // hangouts.tags
	SpaceID     *string `json:"space_id"`    // hangouts.space_id (FK, ON DELETE SET NULL)
	CreatedAt   string  `json:"created_at"`  // hangouts.created_at
	UpdatedAt   string  `json:"updated_at"`  // hangouts.updated_at
}

// HangoutWithSpace joins the parent space title/description for reads.
type HangoutWithSpace struct {
	Hangout
	SpaceTitle       *string `json:"space_title"`
	SpaceDescription *string `json:"space_description"`
}
