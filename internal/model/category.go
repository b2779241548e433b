package model

import "time"

// Category classifies income and expense transactions. Hierarchy is a single
// level: a category either has no parent or points at a top-level one.
type Category struct {
	CreatedAt time.Time
	ID        string
	Name      string
	ParentID  string
	Icon      string
	Color     string
	IsFixed   bool // fixed vs variable expense classification
}
