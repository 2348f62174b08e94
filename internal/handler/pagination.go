package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
	maxPerPage     = 100
)

type PaginatedResponse struct {
	Items   interface{} `json:"items"`
	Page    int         `json:"page"`
	PerPage int         `json:"per_page"`
	Total   int         `json:"total"`
	Pages   int         `json:"pages"`
	Next    *string     `json:"next"`
	Prev    *string     `json:"prev"`
}

// parsePagination reads page/per_page from the query string. Invalid or
// out-of-range values fall back to the defaults instead of failing.
func parsePagination(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = defaultPage
	}

	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}

	return page, perPage
}

// paginate builds the list envelope. An out-of-range page yields empty items
// with correct metadata, not an error.
func paginate(items interface{}, basePath string, page, perPage, total int) PaginatedResponse {
	pages := (total + perPage - 1) / perPage

	var next, prev *string
	if page < pages {
		link := fmt.Sprintf("%s?page=%d&per_page=%d", basePath, page+1, perPage)
		next = &link
	}
	if page > 1 {
		link := fmt.Sprintf("%s?page=%d&per_page=%d", basePath, page-1, perPage)
		prev = &link
	}

	return PaginatedResponse{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		Next:    next,
		Prev:    prev,
	}
}
