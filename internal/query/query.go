// Package query parses the wire form of list parameters (page, limit, sort,
// filter) into a validated description the repository layer can execute.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidParam marks pagination or sort input that cannot be used.
	ErrInvalidParam = errors.New("invalid list parameter")
	// ErrMalformedFilter marks a filter string that does not parse into the
	// expected shape.
	ErrMalformedFilter = errors.New("malformed filter")
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// sortable maps accepted sort field names to the columns they order by.
// Unknown fields are rejected rather than interpolated into SQL.
var sortable = map[string]string{
	"id":        "id",
	"title":     "title",
	"type":      "type",
	"shared":    "shared",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// ListParams is a parsed, validated list request. CategoryName and Shared are
// nil when the filter did not constrain them.
type ListParams struct {
	Page  int
	Limit int

	CategoryName *string
	Shared       *bool

	sortColumn string
	sortDesc   bool
}

// filterSpec is the recognized filter shape. Unknown keys are ignored so
// clients can send newer filters without breaking older servers.
type filterSpec struct {
	CategoryName *string `json:"categoryName"`
	Shared       *bool   `json:"shared"`
}

// ParseListParams validates the raw query-string values of a list request.
// Empty strings select the defaults (page 1, limit 10, ordering by id).
func ParseListParams(page, limit, sort, filter string) (ListParams, error) {
	p := ListParams{Page: defaultPage, Limit: defaultLimit, sortColumn: "id"}

	var err error
	if p.Page, err = parsePositive("page", page, defaultPage); err != nil {
		return ListParams{}, err
	}
	if p.Limit, err = parsePositive("limit", limit, defaultLimit); err != nil {
		return ListParams{}, err
	}

	if sort = strings.TrimSpace(sort); sort != "" {
		field := sort
		if strings.HasPrefix(field, "-") {
			p.sortDesc = true
			field = field[1:]
		}
		col, ok := sortable[field]
		if !ok {
			return ListParams{}, fmt.Errorf("%w: unknown sort field %q", ErrInvalidParam, field)
		}
		p.sortColumn = col
	}

	if filter = strings.TrimSpace(filter); filter != "" {
		var spec filterSpec
		if err := json.Unmarshal([]byte(filter), &spec); err != nil {
			return ListParams{}, fmt.Errorf("%w: %v", ErrMalformedFilter, err)
		}
		p.CategoryName = spec.CategoryName
		p.Shared = spec.Shared
	}

	return p, nil
}

func parsePositive(name, raw string, def int) (int, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidParam, name)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrInvalidParam, name)
	}
	return n, nil
}

// Order returns the ORDER BY clause for the resolved sort.
func (p ListParams) Order() string {
	if p.sortDesc {
		return p.sortColumn + " DESC"
	}
	return p.sortColumn
}

// Offset returns the number of rows to skip for the requested page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageCount returns the number of pages needed for total rows at p.Limit per
// page.
func (p ListParams) PageCount(total int64) int {
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
