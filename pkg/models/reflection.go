package models

// Reflection is a free-form daily study note, one per calendar day.
type Reflection struct {
	Date    string `json:"date" db:"date"` // YYYY-MM-DD
	Content string `json:"content" db:"content"`
}
