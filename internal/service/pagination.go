package service

import "fmt"

const DefaultPerPage = 10

// PageInfo mirrors the paginator block of the thread endpoint.
type PageInfo struct {
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
	Total       int64   `json:"total"`
	LastPage    int     `json:"last_page"`
	Results     int     `json:"results"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

// NewPageInfo computes the paginator for one page. last_page is
// ceil(total/perPage); next/prev links are nil when they would point outside
// [1, last_page].
func NewPageInfo(page, perPage int, total int64, results int, basePath string) PageInfo {
	lastPage := 0
	if total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}

	pageURL := func(p int) *string {
		u := fmt.Sprintf("%s?page=%d&per_page=%d", basePath, p, perPage)
		return &u
	}

	info := PageInfo{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
		Results:     results,
	}
	if page < lastPage {
		info.NextPageURL = pageURL(page + 1)
	}
	if page > 1 && page-1 <= lastPage {
		info.PrevPageURL = pageURL(page - 1)
	}
	return info
}
