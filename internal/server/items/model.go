package items

import "time"

// MaxNameLength bounds the item name, in characters.
const MaxNameLength = 200

// Item is the resource managed by the service. ID is an opaque string
// assigned by the store on creation; Description nil means absent.
// UpdatedAt never precedes CreatedAt.
type Item struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
