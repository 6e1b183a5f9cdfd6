package service

import "testing"

func TestNewPageInfo(t *testing.T) {
	base := "/api/v1/get-inner-chats"
	next2 := base + "?page=2&per_page=10"
	prev1 := base + "?page=1&per_page=10"
	prev2 := base + "?page=2&per_page=10"

	tests := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		results  int
		lastPage int
		next     *string
		prev     *string
	}{
		{"single page", 1, 10, 7, 7, 1, nil, nil},
		{"first of three", 1, 10, 25, 10, 3, &next2, nil},
		{"middle page", 2, 10, 25, 10, 3, strptr(base + "?page=3&per_page=10"), &prev1},
		{"last page", 3, 10, 25, 5, 3, nil, &prev2},
		{"exact multiple", 2, 10, 20, 10, 2, nil, &prev1},
		{"empty set", 1, 10, 0, 0, 0, nil, nil},
		{"beyond last page", 5, 10, 25, 0, 3, nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPageInfo(tt.page, tt.perPage, tt.total, tt.results, base)
			if got.CurrentPage != tt.page || got.PerPage != tt.perPage || got.Total != tt.total || got.Results != tt.results {
				t.Fatalf("echoed fields wrong: %+v", got)
			}
			if got.LastPage != tt.lastPage {
				t.Fatalf("last_page got=%d want=%d", got.LastPage, tt.lastPage)
			}
			checkURL(t, "next_page_url", got.NextPageURL, tt.next)
			checkURL(t, "prev_page_url", got.PrevPageURL, tt.prev)
		})
	}
}

func checkURL(t *testing.T, name string, got, want *string) {
	t.Helper()
	if (got == nil) != (want == nil) {
		t.Fatalf("%s got=%v want=%v", name, deref(got), deref(want))
	}
	if got != nil && *got != *want {
		t.Fatalf("%s got=%s want=%s", name, *got, *want)
	}
}

func strptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
