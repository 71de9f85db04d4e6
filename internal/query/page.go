package query

import "tasknest/internal/model"

// Page is the envelope returned by paginated task listings. Items carry their
// Category and User relations resolved.
type Page struct {
	Items      []model.Task
	TotalCount int64
	Page       int
	Limit      int
	PageCount  int
}
