package dataset

import (
	"context"
	"testing"

	"github.com/bawdo/gosequel/internal/testutil"
	"github.com/bawdo/gosequel/sqlerr"
)

func TestPaginate(t *testing.T) {
	t.Parallel()
	p, err := From("items").Paginate(2, 10, 25)
	testutil.AssertNoError(t, err)
	assertSelect(t, p.Dataset, "SELECT * FROM items LIMIT 10 OFFSET 10")
	testutil.AssertEqual(t, p.PageCount, 3)
	testutil.AssertEqual(t, p.FirstPage(), false)
	testutil.AssertEqual(t, p.LastPage(), false)

	next, ok := p.NextPage()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, next, 3)
	prev, ok := p.PrevPage()
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, prev, 1)

	first, last := p.CurrentPageRecordRange()
	testutil.AssertEqual(t, first, int64(11))
	testutil.AssertEqual(t, last, int64(20))
	testutil.AssertEqual(t, p.CurrentPageRecordCount(), int64(10))
	testutil.AssertDiff(t, p.PageRange(), []int{1, 2, 3})
}

func TestPaginateBoundaries(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name        string
		page, size  int
		count       int64
		pageCount   int
		first, last int64
		onPage      int64
		isFirst     bool
		isLast      bool
	}{
		{"first page", 1, 10, 25, 3, 1, 10, 10, true, false},
		{"partial last page", 3, 10, 25, 3, 21, 25, 5, false, true},
		{"exact fit", 2, 5, 10, 2, 6, 10, 5, false, true},
		{"no records", 1, 10, 0, 1, 1, 0, 0, true, true},
		{"past the end", 5, 10, 25, 3, 0, 0, 0, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, err := From("items").Paginate(tc.page, tc.size, tc.count)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, p.PageCount, tc.pageCount)
			first, last := p.CurrentPageRecordRange()
			testutil.AssertEqual(t, first, tc.first)
			testutil.AssertEqual(t, last, tc.last)
			testutil.AssertEqual(t, p.CurrentPageRecordCount(), tc.onPage)
			testutil.AssertEqual(t, p.FirstPage(), tc.isFirst)
			testutil.AssertEqual(t, p.LastPage(), tc.isLast)
		})
	}
}

func TestPaginateLastPageHasNoNext(t *testing.T) {
	t.Parallel()
	p, err := From("items").Paginate(1, 10, 5)
	testutil.AssertNoError(t, err)
	_, ok := p.NextPage()
	testutil.AssertEqual(t, ok, false)
	_, ok = p.PrevPage()
	testutil.AssertEqual(t, ok, false)
}

func TestPaginateErrors(t *testing.T) {
	t.Parallel()
	_, err := From("items").Paginate(0, 10, 5)
	testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)
	_, err = From("items").Paginate(1, 0, 5)
	testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)

	limited := must(t)(From("items").Limit(3))
	_, err = limited.Paginate(1, 10, 5)
	testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)
}

func TestPaginateContextCounts(t *testing.T) {
	t.Parallel()
	src := &fakeSource{rows: []Row{{"count": int64(42)}}}
	p, err := items(src).Order("id").PaginateContext(context.Background(), 2, 20)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, p.PageCount, 3)
	testutil.AssertEqual(t, p.RecordCount, int64(42))
	testutil.AssertDiff(t, src.queries, []string{"SELECT COUNT(*) AS count FROM items LIMIT 1"})
	assertSelect(t, p.Dataset, "SELECT * FROM items ORDER BY id LIMIT 20 OFFSET 20")
}
