package dto

import (
	"net/http"
	"strconv"
	"strings"

	"leonine/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	SortBy  string `json:"sort_by"`
	SortDir string `json:"sort_dir"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
// Malformed values are dropped. With withDefaults, a missing page or limit
// falls back to the defaults. The limit is capped either way.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) {
	query := r.URL.Query()

	q.Page = positive(query.Get(constant.RequestParamPage), q.Page)
	q.Limit = min(positive(query.Get(constant.RequestParamLimit), q.Limit), constant.MaxValueLimit)

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
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

func positive(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}

	return n
}
