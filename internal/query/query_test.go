package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListParamsDefaults(t *testing.T) {
	p, err := ParseListParams("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "id", p.Order())
	assert.Nil(t, p.CategoryName)
	assert.Nil(t, p.Shared)
}

func TestParseListParamsPagination(t *testing.T) {
	p, err := ParseListParams("3", "25", "", "")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset())
}

func TestParseListParamsRejectsBadPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
	}{
		{"non-numeric page", "abc", ""},
		{"zero page", "0", ""},
		{"negative page", "-1", ""},
		{"non-numeric limit", "", "ten"},
		{"zero limit", "", "0"},
		{"float limit", "", "2.5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseListParams(tc.page, tc.limit, "", "")
			assert.ErrorIs(t, err, ErrInvalidParam)
		})
	}
}

func TestParseListParamsSort(t *testing.T) {
	p, err := ParseListParams("", "", "title", "")
	require.NoError(t, err)
	assert.Equal(t, "title", p.Order())

	p, err = ParseListParams("", "", "-createdAt", "")
	require.NoError(t, err)
	assert.Equal(t, "created_at DESC", p.Order())

	_, err = ParseListParams("", "", "owner", "")
	assert.ErrorIs(t, err, ErrInvalidParam)

	_, err = ParseListParams("", "", "title; DROP TABLE tasks", "")
	assert.ErrorIs(t, err, ErrInvalidParam)
}

func TestParseListParamsFilter(t *testing.T) {
	p, err := ParseListParams("", "", "", `{"categoryName":"work","shared":true}`)
	require.NoError(t, err)
	require.NotNil(t, p.CategoryName)
	assert.Equal(t, "work", *p.CategoryName)
	require.NotNil(t, p.Shared)
	assert.True(t, *p.Shared)
}

func TestParseListParamsFilterUnknownKeysIgnored(t *testing.T) {
	p, err := ParseListParams("", "", "", `{"color":"red","shared":false}`)
	require.NoError(t, err)
	assert.Nil(t, p.CategoryName)
	require.NotNil(t, p.Shared)
	assert.False(t, *p.Shared)
}

func TestParseListParamsMalformedFilter(t *testing.T) {
	cases := []struct {
		name   string
		filter string
	}{
		{"not json", "categoryName=work"},
		{"truncated", `{"shared":`},
		{"wrong shared type", `{"shared":"yes"}`},
		{"wrong categoryName type", `{"categoryName":7}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseListParams("", "", "", tc.filter)
			assert.ErrorIs(t, err, ErrMalformedFilter)
		})
	}
}

func TestPageCount(t *testing.T) {
	p, err := ParseListParams("1", "2", "", "")
	require.NoError(t, err)
	assert.Equal(t, 0, p.PageCount(0))
	assert.Equal(t, 1, p.PageCount(2))
	assert.Equal(t, 3, p.PageCount(5))
	assert.Equal(t, 3, p.PageCount(6))
	assert.Equal(t, 4, p.PageCount(7))
}
