package domain

// Table is a physical table in the dining room.
type Table struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
}
