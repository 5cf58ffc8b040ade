package pagination

import "testing"

func TestPageParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  PageParams
		wantErr bool
	}{
		{"defaults are valid", DefaultPageParams(), false},
		{"page zero", PageParams{Page: 0, Size: 10}, true},
		{"negative page", PageParams{Page: -1, Size: 10}, true},
		{"size zero", PageParams{Page: 1, Size: 0}, true},
		{"size at max", PageParams{Page: 1, Size: MaxSize}, false},
		{"size above max", PageParams{Page: 1, Size: MaxSize + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPageParams_OffsetAndLimit(t *testing.T) {
	params := PageParams{Page: 3, Size: 25}

	if params.Offset() != 50 {
		t.Errorf("Offset() = %d, want 50", params.Offset())
	}

	if params.Limit() != 25 {
		t.Errorf("Limit() = %d, want 25", params.Limit())
	}
}

func TestNewPage_MiddlePage(t *testing.T) {
	results := []string{"a", "b", "c"}
	page := NewPage(results, 9, PageParams{Page: 2, Size: 3})

	if page.TotalCount != 9 {
		t.Errorf("TotalCount = %d, want 9", page.TotalCount)
	}

	if page.PreviousPage == nil || *page.PreviousPage != 1 {
		t.Errorf("PreviousPage = %v, want 1", page.PreviousPage)
	}

	if page.NextPage == nil || *page.NextPage != 3 {
		t.Errorf("NextPage = %v, want 3", page.NextPage)
	}
}

func TestNewPage_FirstPageHasNoPrevious(t *testing.T) {
	page := NewPage([]string{"a"}, 5, PageParams{Page: 1, Size: 1})

	if page.PreviousPage != nil {
		t.Errorf("PreviousPage = %v, want nil on first page", *page.PreviousPage)
	}

	if page.NextPage == nil || *page.NextPage != 2 {
		t.Errorf("NextPage = %v, want 2", page.NextPage)
	}
}

func TestNewPage_LastPageHasNoNext(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 8, PageParams{Page: 3, Size: 3})

	if page.NextPage != nil {
		t.Errorf("NextPage = %v, want nil on last page", *page.NextPage)
	}

	if page.PreviousPage == nil || *page.PreviousPage != 2 {
		t.Errorf("PreviousPage = %v, want 2", page.PreviousPage)
	}
}

func TestNewPage_EmptyResults(t *testing.T) {
	page := NewPage([]string{}, 0, DefaultPageParams())

	if page.NextPage != nil || page.PreviousPage != nil {
		t.Error("empty results should have no next or previous page")
	}

	if page.Results == nil || len(page.Results) != 0 {
		t.Errorf("Results = %v, want empty non-nil slice", page.Results)
	}
}

func TestNewPage_ExactPageBoundary(t *testing.T) {
	// 6 results, size 3: page 2 is the last page.
	page := NewPage([]string{"d", "e", "f"}, 6, PageParams{Page: 2, Size: 3})

	if page.NextPage != nil {
		t.Errorf("NextPage = %v, want nil when total is an exact multiple", *page.NextPage)
	}
}

func TestNewPage_ZeroSize(t *testing.T) {
	// Unvalidated zero-value params must not panic; with no usable size
	// there are no further pages.
	page := NewPage([]string{"a"}, 1, PageParams{Page: 1, Size: 0})

	if page.TotalCount != 1 {
		t.Errorf("TotalCount = %d, want 1", page.TotalCount)
	}
	if page.NextPage != nil {
		t.Errorf("NextPage = %v, want nil for zero size", *page.NextPage)
	}
	if page.PreviousPage != nil {
		t.Errorf("PreviousPage = %v, want nil on the first page", *page.PreviousPage)
	}
}
