package dto_test

import (
	"math"
	"net/http/httptest"
	"roomify/shared/constant"
	"roomify/shared/dto"
	"roomify/shared/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	metadata := &dto.Metadata{}
	metadata.FromModel(model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	})

	assert.Equal(t, createdAt.Format(constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, modifiedAt.Format(constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "creator", metadata.CreatedBy)
	assert.Equal(t, "modifier", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all params",
			url:      "/bookings?page=2&limit=5&sort_dir=desc",
			expected: dto.QueryParams{Page: 2, Limit: 5, SortDir: dto.SortDirDesc},
		},
		{
			name:           "defaults applied",
			url:            "/bookings",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "invalid values ignored",
			url:      "/bookings?page=-1&limit=abc&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
		{
			name:     "page at the integer limit",
			url:      "/bookings?page=9223372036854775807&limit=100",
			expected: dto.QueryParams{Page: math.MaxInt, Limit: 100},
		},
		{
			name:     "limit clamped",
			url:      "/bookings?limit=5000&sort_dir=asc",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit, SortDir: dto.SortDirAsc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := dto.QueryParams{}
			q.FromRequest(httptest.NewRequest("GET", tt.url, nil), tt.defaultRequest)

			assert.Equal(t, tt.expected, q)
		})
	}
}

func TestQueryParams_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		params   dto.QueryParams
		total    int
		from, to int
	}{
		{name: "no limit", params: dto.QueryParams{}, total: 7, from: 0, to: 7},
		{name: "middle page", params: dto.QueryParams{Page: 2, Limit: 3}, total: 7, from: 3, to: 6},
		{name: "short last page", params: dto.QueryParams{Page: 3, Limit: 3}, total: 7, from: 6, to: 7},
		{name: "past the end", params: dto.QueryParams{Page: 9, Limit: 3}, total: 7, from: 7, to: 7},
		{name: "huge page", params: dto.QueryParams{Page: math.MaxInt, Limit: 100}, total: 7, from: 7, to: 7},
		{name: "huge page and limit", params: dto.QueryParams{Page: math.MaxInt / 2, Limit: math.MaxInt / 2}, total: 7, from: 7, to: 7},
		{name: "empty", params: dto.QueryParams{Page: 1, Limit: 3}, total: 0, from: 0, to: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.params.Bounds(tt.total)

			assert.Equal(t, tt.from, from)
			assert.Equal(t, tt.to, to)
		})
	}
}

func TestMetadata_Touch(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := model.NewMetadata("user1", created)

	meta.Touch("fac1", created.Add(time.Hour))

	assert.Equal(t, "user1", meta.CreatedBy)
	assert.Equal(t, "fac1", meta.ModifiedBy)
	assert.Equal(t, created.Add(time.Hour), meta.ModifiedAt)
	assert.Equal(t, created, meta.CreatedAt)
}

func TestMetadata_FromModel_Untouched(t *testing.T) {
	metadata := &dto.Metadata{}
	metadata.FromModel(model.NewMetadata("user1", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, "user1", metadata.CreatedBy)
	assert.Empty(t, metadata.ModifiedAt)
	assert.Empty(t, metadata.ModifiedBy)
}
