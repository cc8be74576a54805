package model

// Request is an ask posted on a space's request board.  Like lend items
// it keeps a nullable space reference that is nulled, not dangled, when
// the parent space disappears.  Rows in the `requests` table.
type Request struct {
	ID          uint64  `json:"id"`          // requests.id
	RequestID   string  `json:"request_id"`  // requests.request_id (unique, immutable)
	Title       string  `json:"title"`       // requests.title
	Description *string `json:"description"` // requests.description
	Requester   string  `json:"requester"`   // requests.requester
	Up          int     `json:"up"`          // requests.up
	Down        int     `json:"down"`        // requests.down
	Tags        List    `json:"tags"`        // requests.tags
	SpaceID     *string `json:"space_id"`    // requests.space_id (FK, ON DELETE SET NULL)
	CreatedAt   string  `json:"created_at"`  // requests.created_at
	UpdatedAt   string  `json:"updated_at"`  // requests.updated_at
}

// RequestWithSpace joins the parent space title/description for reads.
type RequestWithSpace struct {
	Request
	SpaceTitle       *string `json:"space_title"`
	SpaceDescription *string `json:"space_description"`
}
