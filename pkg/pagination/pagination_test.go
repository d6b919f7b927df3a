package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	n := Params{}.Normalize()
	if n.Page != 1 {
		t.Fatalf("expected page 1, got %d", n.Page)
	}
	if n.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", n.PageSize)
	}
}

func TestNormalizeClampsPageSize(t *testing.T) {
	n := Params{Page: -3, PageSize: MaxPageSize + 500}.Normalize()
	if n.Page != 1 {
		t.Fatalf("negative page should clamp to 1, got %d", n.Page)
	}
	if n.PageSize != MaxPageSize {
		t.Fatalf("oversized page size should clamp to %d, got %d", MaxPageSize, n.PageSize)
	}
}

func TestOffsetAndLimit(t *testing.T) {
	p := Params{Page: 3, PageSize: 25}
	if p.Offset() != 50 {
		t.Fatalf("expected offset 50, got %d", p.Offset())
	}
	if p.Limit() != 25 {
		t.Fatalf("expected limit 25, got %d", p.Limit())
	}

	if (Params{}).Offset() != 0 {
		t.Fatalf("zero-value params should start at offset 0")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{total: 0, pageSize: 50, want: 1},
		{total: 1, pageSize: 50, want: 1},
		{total: 50, pageSize: 50, want: 1},
		{total: 51, pageSize: 50, want: 2},
		{total: 100, pageSize: 25, want: 4},
		{total: 10, pageSize: 0, want: 1},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.pageSize); got != tt.want {
			t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.pageSize, got, tt.want)
		}
	}
}
