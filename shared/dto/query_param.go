package dto

import (
	"net/http"
	"roomify/shared/constant"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries list pagination and ordering.
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit and sort_dir from the query string, ignoring
// malformed values. Limits above constant.MaxValueLimit are clamped. With
// withDefaults set, a missing page or limit falls back to the defaults.
//
//	q := dto.QueryParams{}
//	q.FromRequest(req, true)
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	values := r.URL.Query()

	q.Page = positiveInt(values.Get(constant.RequestParamPage), q.Page)
	q.Limit = min(positiveInt(values.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	switch sortDir := strings.ToUpper(values.Get(constant.RequestParamSortDir)); sortDir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = sortDir
	}

	if !withDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Descending reports whether the caller asked for newest first.
func (q QueryParams) Descending() bool {
	return q.SortDir == SortDirDesc
}

// Bounds returns the half-open slice range of the requested page over total
// items. A zero limit selects everything.
func (q QueryParams) Bounds(total int) (from, to int) {
	if q.Limit <= 0 {
		return 0, total
	}

	skipped := max(q.Page, 1) - 1
	if total == 0 || skipped > (total-1)/q.Limit {
		return total, total
	}

	from = skipped * q.Limit
	to = from + min(q.Limit, total-from)

	return from, to
}

func positiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
