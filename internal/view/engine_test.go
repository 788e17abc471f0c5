package view

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/five82/quayside/internal/containers"
)

func makeRecords(n int) []containers.Record {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	records := make([]containers.Record, n)
	for i := range records {
		records[i] = containers.Record{
			ID:            int64(i + 1),
			Agency:        fmt.Sprintf("Agency %d", i+1),
			Booking:       fmt.Sprintf("BK-%03d", i+1),
			LoadPort:      "Valparaiso",
			DeliverPort:   "Rotterdam",
			DischargePort: "Rotterdam",
			Departure:     base.Add(time.Duration(i%5) * 24 * time.Hour),
		}
	}
	return records
}

func ids(records []containers.Record) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEngine_Defaults(t *testing.T) {
	e := New()
	if e.PageSize() != DefaultPageSize || e.PageIndex() != 0 {
		t.Fatalf("defaults = size %d index %d, want %d 0", e.PageSize(), e.PageIndex(), DefaultPageSize)
	}
	if e.PageCount() != 1 {
		t.Fatalf("PageCount() on empty engine = %d, want 1", e.PageCount())
	}
	if rows := e.CurrentPageRows(); rows == nil || len(rows) != 0 {
		t.Fatalf("CurrentPageRows() = %#v, want empty non-nil slice", rows)
	}
	if e.Query() != "" || e.DateFilter() != nil {
		t.Fatalf("query/date defaults = %q %v, want empty and nil", e.Query(), e.DateFilter())
	}
}

func TestEngine_PaginatesTwentyFiveRecords(t *testing.T) {
	records := makeRecords(25)
	e := New()
	e.Load(records)

	if e.PageCount() != 3 {
		t.Fatalf("PageCount() = %d, want 3", e.PageCount())
	}
	if got := ids(e.CurrentPageRows()); !sameIDs(got, ids(records[0:10])) {
		t.Fatalf("page 0 rows = %v, want records[0:10]", got)
	}

	e.NextPage()
	e.NextPage()
	if e.PageIndex() != 2 {
		t.Fatalf("PageIndex() = %d, want 2", e.PageIndex())
	}
	rows := e.CurrentPageRows()
	if len(rows) != 5 || !sameIDs(ids(rows), ids(records[20:25])) {
		t.Fatalf("page 2 rows = %v, want records[20:25]", ids(rows))
	}
}

func TestEngine_BoundariesAreNoOps(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))

	e.PreviousPage()
	if e.PageIndex() != 0 || e.CanPreviousPage() {
		t.Fatalf("PreviousPage at 0 moved to %d", e.PageIndex())
	}

	for i := 0; i < 10; i++ {
		e.NextPage()
	}
	if e.PageIndex() != 2 || e.CanNextPage() {
		t.Fatalf("NextPage past end left index %d, want 2", e.PageIndex())
	}
	e.NextPage()
	if e.PageIndex() != 2 {
		t.Fatalf("NextPage at last page moved to %d", e.PageIndex())
	}
}

func TestEngine_PageCountFormula(t *testing.T) {
	e := New()
	for _, tc := range []struct{ n, size, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{50, 20, 3},
		{99, 50, 2},
	} {
		if err := e.SetPageSize(tc.size); err != nil {
			t.Fatalf("SetPageSize(%d): %v", tc.size, err)
		}
		e.Load(makeRecords(tc.n))
		if got := e.PageCount(); got != tc.want {
			t.Fatalf("n=%d size=%d PageCount() = %d, want %d", tc.n, tc.size, got, tc.want)
		}
	}
}

func TestEngine_SetQueryFiltersAndKeepsOrder(t *testing.T) {
	records := makeRecords(30)
	e := New()
	e.Load(records)

	e.SetQuery("agency 1")
	// Agency 1, 10..19
	want := []int64{1, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	if got := ids(e.Filtered()); !sameIDs(got, want) {
		t.Fatalf("filtered = %v, want %v", got, want)
	}

	for _, r := range records {
		in := false
		for _, f := range e.Filtered() {
			if f.ID == r.ID {
				in = true
			}
		}
		if in != Matches(r, "agency 1", nil) {
			t.Fatalf("record %d membership = %v, want Matches()", r.ID, in)
		}
	}
}

func TestEngine_SetQueryPreservesOrClampsPage(t *testing.T) {
	e := New()
	e.Load(makeRecords(30))
	e.NextPage()
	e.NextPage()

	e.SetQuery("rotterdam") // every record matches
	if e.PageIndex() != 2 {
		t.Fatalf("PageIndex() = %d, want 2 preserved", e.PageIndex())
	}
	if e.PageSize() != DefaultPageSize {
		t.Fatalf("PageSize() = %d, want unchanged", e.PageSize())
	}

	e.SetQuery("BK-00") // ids 1..9
	if e.PageIndex() != 0 {
		t.Fatalf("PageIndex() = %d, want clamped to 0", e.PageIndex())
	}

	e.SetQuery("nothing matches this")
	if e.PageIndex() != 0 || e.PageCount() != 1 || len(e.CurrentPageRows()) != 0 {
		t.Fatalf("empty result state = index %d count %d rows %d", e.PageIndex(), e.PageCount(), len(e.CurrentPageRows()))
	}
}

func TestEngine_SetDateFilterIsStaged(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	day := Date{Year: 2024, Month: time.March, Day: 1}

	e.SetDateFilter(&day)
	if e.FilteredLen() != 25 {
		t.Fatalf("FilteredLen() = %d, want 25 before commit", e.FilteredLen())
	}
	day.Day = 20
	if got := e.DateFilter(); got == nil || got.Day != 1 {
		t.Fatalf("DateFilter() = %v, want engine to keep its own copy", got)
	}

	e.CommitDateSearch()
	// records 1,6,11,16,21 depart on March 1.
	if got := ids(e.Filtered()); !sameIDs(got, []int64{1, 6, 11, 16, 21}) {
		t.Fatalf("filtered after commit = %v", got)
	}
}

func TestEngine_CommitDateSearchIgnoresQuery(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	e.SetQuery("agency 2") // 2, 20..25
	day := Date{Year: 2024, Month: time.March, Day: 1}
	e.SetDateFilter(&day)

	e.CommitDateSearch()
	if got := ids(e.Filtered()); !sameIDs(got, []int64{1, 6, 11, 16, 21}) {
		t.Fatalf("commit should narrow by date alone, got %v", got)
	}
	if e.Query() != "agency 2" {
		t.Fatalf("Query() = %q, want the typed query kept", e.Query())
	}

	// The next keystroke filters live with query and staged date together.
	e.SetQuery("agency 2")
	if got := ids(e.Filtered()); !sameIDs(got, []int64{21}) {
		t.Fatalf("live filter with staged date = %v, want [21]", got)
	}
}

func TestEngine_CommitDateSearchWithoutDateIsNoOp(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	e.SetQuery("agency 1")
	before := ids(e.Filtered())

	calls := 0
	cancel := e.Subscribe(func(Page) { calls++ })
	defer cancel()

	e.CommitDateSearch()
	if !sameIDs(ids(e.Filtered()), before) {
		t.Fatalf("CommitDateSearch without date changed the filtered set")
	}
	if calls != 0 {
		t.Fatalf("observer called %d times, want 0 for a no-op", calls)
	}
}

func TestEngine_ClearDateFilterKeepsFilteredSet(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	d := DateOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	e.SetDateFilter(&d)
	e.CommitDateSearch()
	narrowed := e.FilteredLen()

	e.ClearDateFilter()
	if e.DateFilter() != nil {
		t.Fatalf("DateFilter() = %v, want nil", e.DateFilter())
	}
	if e.FilteredLen() != narrowed {
		t.Fatalf("ClearDateFilter changed the filtered set: %d, want %d", e.FilteredLen(), narrowed)
	}

	e.SetQuery("")
	if e.FilteredLen() != 25 {
		t.Fatalf("next SetQuery should filter without the date, got %d", e.FilteredLen())
	}
}

func TestEngine_SetPageSize(t *testing.T) {
	e := New()
	e.Load(makeRecords(45))
	e.NextPage()
	e.NextPage()
	e.NextPage() // page 3, first visible row is index 30

	if err := e.SetPageSize(20); err != nil {
		t.Fatalf("SetPageSize(20) returned error: %v", err)
	}
	if e.PageIndex() != 1 {
		t.Fatalf("PageIndex() = %d, want 1 (row 30 lives on page 1 of size 20)", e.PageIndex())
	}
	if rows := e.CurrentPageRows(); rows[10].ID != 31 {
		t.Fatalf("row 30 not visible after resize, rows = %v", ids(rows))
	}

	if err := e.SetPageSize(50); err != nil {
		t.Fatalf("SetPageSize(50) returned error: %v", err)
	}
	if e.PageIndex() != 0 || e.PageCount() != 1 {
		t.Fatalf("after resize to 50 index=%d count=%d, want 0 1", e.PageIndex(), e.PageCount())
	}
}

func TestEngine_SetPageSizeRejectsUnknownSizes(t *testing.T) {
	e := New()
	e.Load(makeRecords(45))
	e.NextPage()

	for _, size := range []int{0, -10, 15, 25, 100} {
		err := e.SetPageSize(size)
		if !errors.Is(err, ErrInvalidPageSize) {
			t.Fatalf("SetPageSize(%d) error = %v, want ErrInvalidPageSize", size, err)
		}
		if e.PageSize() != 10 || e.PageIndex() != 1 {
			t.Fatalf("state changed after rejected size %d: size=%d index=%d", size, e.PageSize(), e.PageIndex())
		}
	}
}

func TestEngine_LoadResetsPageAndReappliesFilters(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	e.NextPage()
	e.SetQuery("agency 2")

	e.Load(makeRecords(40))
	if e.PageIndex() != 0 {
		t.Fatalf("PageIndex() = %d, want reset to 0", e.PageIndex())
	}
	if e.TotalLen() != 40 {
		t.Fatalf("TotalLen() = %d, want 40", e.TotalLen())
	}
	// Agency 2, 20..29
	if e.FilteredLen() != 11 {
		t.Fatalf("FilteredLen() = %d, want 11", e.FilteredLen())
	}
}

func TestEngine_DoesNotAliasInput(t *testing.T) {
	records := makeRecords(3)
	e := New()
	e.Load(records)

	records[0].Agency = "mutated"
	if e.CurrentPageRows()[0].Agency == "mutated" {
		t.Fatalf("engine shares backing array with caller")
	}

	rows := e.CurrentPageRows()
	rows[1].Agency = "changed"
	if e.CurrentPageRows()[1].Agency == "changed" {
		t.Fatalf("CurrentPageRows exposes internal storage")
	}
}

func TestEngine_SetPageIndexClamps(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	e.SetPageIndex(9)
	if e.PageIndex() != 2 {
		t.Fatalf("PageIndex() = %d, want 2", e.PageIndex())
	}
	e.SetPageIndex(-4)
	if e.PageIndex() != 0 {
		t.Fatalf("PageIndex() = %d, want 0", e.PageIndex())
	}
}

func TestEngine_SubscriberCancelsDuringNotify(t *testing.T) {
	e := New()

	var onceCalls, laterCalls int
	var cancelOnce func()
	cancelOnce = e.Subscribe(func(Page) {
		onceCalls++
		cancelOnce()
	})
	cancelLater := e.Subscribe(func(Page) { laterCalls++ })
	defer cancelLater()

	e.Load(makeRecords(3))
	e.Load(makeRecords(5))

	if onceCalls != 1 {
		t.Fatalf("self-cancelling observer called %d times, want 1", onceCalls)
	}
	if laterCalls != 2 {
		t.Fatalf("remaining observer called %d times, want 2", laterCalls)
	}
}

func TestEngine_SubscriberCancelsAnotherDuringNotify(t *testing.T) {
	e := New()

	var firstCalls, secondCalls int
	var cancelSecond func()
	e.Subscribe(func(Page) {
		firstCalls++
		if cancelSecond != nil {
			cancelSecond()
		}
	})
	cancelSecond = e.Subscribe(func(Page) { secondCalls++ })

	e.Load(makeRecords(3))
	e.Load(makeRecords(5))

	if firstCalls != 2 {
		t.Fatalf("first observer called %d times, want 2", firstCalls)
	}
	// The second observer was registered when the first notification began.
	if secondCalls != 1 {
		t.Fatalf("cancelled observer called %d times, want 1", secondCalls)
	}
}

func TestEngine_SubscribeReceivesPages(t *testing.T) {
	e := New()
	var pages []Page
	cancel := e.Subscribe(func(p Page) { pages = append(pages, p) })

	e.Load(makeRecords(25))
	e.NextPage()
	e.NextPage()
	e.NextPage() // no-op, no notification

	if len(pages) != 3 {
		t.Fatalf("got %d notifications, want 3", len(pages))
	}
	last := pages[len(pages)-1]
	if last.Index != 2 || last.Count != 3 || last.Total != 25 || len(last.Rows) != 5 || last.HasNext() || !last.HasPrevious() {
		t.Fatalf("last page = %+v", last)
	}

	cancel()
	e.PreviousPage()
	if len(pages) != 3 {
		t.Fatalf("cancelled observer still notified")
	}
}

func TestEngine_AppliedDateTracksFilteredSet(t *testing.T) {
	e := New()
	e.Load(makeRecords(25))
	first := Date{Year: 2024, Month: time.March, Day: 1}
	second := Date{Year: 2024, Month: time.March, Day: 2}

	e.SetDateFilter(&first)
	if p := e.Page(); p.Applied != nil || !p.DatePending() {
		t.Fatalf("staged date reported as applied: %+v", p)
	}

	e.CommitDateSearch()
	if p := e.Page(); p.Applied == nil || !p.Applied.Equal(first) || p.DatePending() {
		t.Fatalf("after commit Applied = %v, pending = %v", p.Applied, p.DatePending())
	}

	e.SetDateFilter(&second)
	if p := e.Page(); !p.Applied.Equal(first) || !p.DatePending() {
		t.Fatalf("restaged date should leave %v applied and be pending", first)
	}

	e.SetQuery("BK")
	if p := e.Page(); !p.Applied.Equal(second) || p.DatePending() {
		t.Fatalf("SetQuery should apply the staged date, got %v", p.Applied)
	}

	e.ClearDateFilter()
	if p := e.Page(); !p.Applied.Equal(second) || p.DatePending() {
		t.Fatalf("clearing the staged date keeps the filtered set and its date")
	}

	e.SetQuery("")
	if p := e.Page(); p.Applied != nil || p.Filtered != 25 {
		t.Fatalf("SetQuery without a date should drop the applied date: %+v", p)
	}
}
