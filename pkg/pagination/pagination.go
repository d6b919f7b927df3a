package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 50
	// MaxPageSize caps how many rows any listing query can request.
	MaxPageSize = 1000
)

// Params holds numbered-page inputs from controllers or services.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps the params to a valid page (>= 1) and size (1..max).
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the normalized page size.
func (p Params) Limit() int {
	return p.Normalize().PageSize
}

// TotalPages computes the page count for a result set.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}
