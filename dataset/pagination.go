package dataset

import (
	"context"
	"fmt"

	"github.com/bawdo/gosequel/sqlerr"
)

// Paginated is a dataset limited to one page of results, along with the
// page arithmetic derived from the total record count.
type Paginated struct {
	*Dataset
	PageSize    int
	CurrentPage int
	PageCount   int
	RecordCount int64
}

// Paginate limits the dataset to page (1-based) of size pageSize, given the
// total number of records. A dataset that is already limited cannot be
// paginated.
func (d *Dataset) Paginate(page, pageSize int, recordCount int64) (*Paginated, error) {
	if d.core.Limit != nil || d.core.Offset != nil {
		return nil, fmt.Errorf("%w: cannot paginate a limited dataset", sqlerr.ErrInvalidOperation)
	}
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("%w: page %d and page size %d must be positive",
			sqlerr.ErrInvalidOperation, page, pageSize)
	}
	if recordCount < 0 {
		recordCount = 0
	}
	limited, err := d.Limit(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	pages := int((recordCount + int64(pageSize) - 1) / int64(pageSize))
	return &Paginated{
		Dataset:     limited,
		PageSize:    pageSize,
		CurrentPage: page,
		PageCount:   max(pages, 1),
		RecordCount: recordCount,
	}, nil
}

// PaginateContext counts the dataset's rows with its row source and then
// paginates it.
func (d *Dataset) PaginateContext(ctx context.Context, page, pageSize int) (*Paginated, error) {
	n, err := d.Count(ctx)
	if err != nil {
		return nil, err
	}
	return d.Paginate(page, pageSize, n)
}

// FirstPage reports whether this is the first page.
func (p *Paginated) FirstPage() bool { return p.CurrentPage == 1 }

// LastPage reports whether this is the last page.
func (p *Paginated) LastPage() bool { return p.CurrentPage == p.PageCount }

// NextPage returns the following page number, or false on the last page.
func (p *Paginated) NextPage() (int, bool) {
	if p.CurrentPage >= p.PageCount {
		return 0, false
	}
	return p.CurrentPage + 1, true
}

// PrevPage returns the preceding page number, or false on the first page.
func (p *Paginated) PrevPage() (int, bool) {
	if p.CurrentPage <= 1 {
		return 0, false
	}
	return p.CurrentPage - 1, true
}

// PageRange returns every page number, 1 through PageCount.
func (p *Paginated) PageRange() []int {
	out := make([]int, p.PageCount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// CurrentPageRecordRange returns the 1-based index of the first and last
// record on the page. A page past the end reports 0, 0.
func (p *Paginated) CurrentPageRecordRange() (int64, int64) {
	if p.CurrentPage > p.PageCount {
		return 0, 0
	}
	first := int64(p.CurrentPage-1)*int64(p.PageSize) + 1
	last := min(first+int64(p.PageSize)-1, p.RecordCount)
	return first, last
}

// CurrentPageRecordCount returns the number of records on the page.
func (p *Paginated) CurrentPageRecordCount() int64 {
	first, last := p.CurrentPageRecordRange()
	if first == 0 || last < first {
		return 0
	}
	return last - first + 1
}
