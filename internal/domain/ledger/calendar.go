package ledger

import "sort"

// MonthGridCells is the fixed size of a month grid: six weeks of seven
// days, Sunday first.
const MonthGridCells = 42

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date           Date             `json:"date"`
	IsCurrentMonth bool             `json:"is_current_month"`
	Events         []FinancialEvent `json:"events"`
}

// CalendarBuilder renders record snapshots into month grids for agenda
// views. It owns only grid-shape computation and per-day sorting; all
// event semantics live in the classifier.
type CalendarBuilder struct {
	classifier *Classifier
}

// NewCalendarBuilder creates a calendar builder over the given classifier.
func NewCalendarBuilder(classifier *Classifier) *CalendarBuilder {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &CalendarBuilder{classifier: classifier}
}

// MonthGrid builds the 42-cell grid for a month. Leading and trailing
// cells from adjacent months pad the grid and are marked as outside the
// displayed month. Each cell carries the schedule entries due that day,
// calendar and pending kinds only, sorted by amount descending.
func (b *CalendarBuilder) MonthGrid(ym YearMonth, set RecordSet) []CalendarDay {
	first := ym.FirstDay()
	start := first.AddDays(-int(first.Weekday()))
	end := start.AddDays(MonthGridCells - 1)

	byDay := map[Date][]FinancialEvent{}
	for _, ev := range b.classifier.Classify(set, NewDateRange(start, end)) {
		if ev.Kind != EventCalendar && ev.Kind != EventPending {
			continue
		}
		byDay[ev.Date] = append(byDay[ev.Date], ev)
	}

	grid := make([]CalendarDay, MonthGridCells)
	for i := range grid {
		day := start.AddDays(i)
		events := byDay[day]
		if events == nil {
			events = []FinancialEvent{}
		}
		sort.SliceStable(events, func(a, c int) bool {
			return events[a].Amount.GreaterThan(events[c].Amount)
		})
		grid[i] = CalendarDay{
			Date:           day,
			IsCurrentMonth: day.Year == ym.Year && day.Month == ym.Month,
			Events:         events,
		}
	}
	return grid
}
