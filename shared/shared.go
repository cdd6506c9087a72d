package shared

import (
	"context"
	"math"
	"roomify/shared/constant"
	"roomify/shared/dto"
	"strings"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// Paginate returns the page of items selected by params. A zero limit returns everything.
func Paginate[T any](items []T, params dto.QueryParams) []T {
	from, to := params.Bounds(len(items))
	if from == to && params.Limit > 0 {
		return []T{}
	}

	return items[from:to]
}

// BuildCacheKey joins a prefix and its parts with ":".
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), ":")
}

// CallerID returns the caller id the identity middleware stored on ctx.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return id
}
