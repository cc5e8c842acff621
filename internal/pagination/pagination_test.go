package pagination

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		limit      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "explicit", page: "3", limit: "5", wantPage: 3, wantLimit: 5, wantOffset: 10},
		{name: "zero and negative", page: "0", limit: "-4", wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "garbage", page: "two", limit: "ten", wantPage: 1, wantLimit: 10, wantOffset: 0},
		{name: "limit capped", page: "2", limit: "1000", wantPage: 2, wantLimit: MaxLimit, wantOffset: MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseRequest(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantLimit, req.Limit)
			assert.Equal(t, tt.wantOffset, req.Offset())
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 7, TotalPages(7, 1))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestSortFields_Resolve(t *testing.T) {
	fields := NewSortFields("name", map[string]string{
		"name":    "name",
		"type":    "type",
		"address": "address",
	})

	assert.Equal(t, Sort{Field: "name", Order: Asc}, fields.Resolve("", ""))
	assert.Equal(t, Sort{Field: "address", Order: Desc}, fields.Resolve("address", "DESC"))
	assert.Equal(t, Sort{Field: "type", Order: Asc}, fields.Resolve("type", "sideways"))
	assert.Equal(t, Sort{Field: "name", Order: Desc}, fields.Resolve("id; DROP TABLE properties", "desc"))
	assert.Equal(t, "address DESC", fields.Resolve("address", "desc").Clause())
}

func TestNewPage_EmptyItemsSerializeAsArray(t *testing.T) {
	page := NewPage[int](nil, 0, NewRequest(1, 10))

	b, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"limit":10,"totalPages":0}`, string(b))
	assert.Equal(t, Block{Total: 0, Page: 1, Limit: 10, TotalPages: 0}, page.Block())
}
