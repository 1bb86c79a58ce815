package models

import "fmt"

// TimePeriod selects the reporting window
type TimePeriod string

const (
	PeriodDay   TimePeriod = "day"
	PeriodWeek  TimePeriod = "week"
	PeriodMonth TimePeriod = "month"
)

// ParseTimePeriod validates a raw period string; empty defaults to month
func ParseTimePeriod(raw string) (TimePeriod, error) {
	if raw == "" {
		return PeriodMonth, nil
	}
	switch p := TimePeriod(raw); p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("unknown time period: %q", raw)
}

// CardFilter is the dashboard quick-filter category
type CardFilter string

// CardAll passes every pipeline-visible task
const CardAll CardFilter = "all"

// FilterConfig is an immutable description of one dashboard/report query.
// It is passed into the pure filter functions; the engine holds no state.
type FilterConfig struct {
	// Month is a YYYY-MM key matched as a prefix of the effective date.
	// Empty disables the month filter.
	Month string
	// Period narrows report queries to the current day or trailing week.
	// Empty or PeriodMonth is a no-op.
	Period TimePeriod
	// Search is a case-insensitive substring matched across client, task,
	// project, and assignee fields.
	Search string
	// Employee matches assignedTo or socialMediaAssignedTo exactly.
	Employee string
	// Client matches clientName exactly.
	Client string
	// Status matches the task status exactly. Empty disables the filter.
	Status TaskStatus
	// Card is the dashboard quick-filter; empty or CardAll passes everything.
	Card CardFilter
}

// GroupingMode selects how the report assembler partitions tasks
type GroupingMode string

const (
	GroupByClient             GroupingMode = "client"
	GroupByEmployeeThenClient GroupingMode = "employee"
)

// ParseGroupingMode validates a raw grouping mode; empty defaults to employee
func ParseGroupingMode(raw string) (GroupingMode, error) {
	if raw == "" {
		return GroupByEmployeeThenClient, nil
	}
	switch m := GroupingMode(raw); m {
	case GroupByClient, GroupByEmployeeThenClient:
		return m, nil
	}
	return "", fmt.Errorf("unknown grouping mode: %q", raw)
}

// OutputKind selects the document renderer for an export
type OutputKind string

const (
	OutputPDF   OutputKind = "pdf"
	OutputExcel OutputKind = "excel"
)

// ParseOutputKind validates a raw output kind; empty defaults to pdf
func ParseOutputKind(raw string) (OutputKind, error) {
	if raw == "" {
		return OutputPDF, nil
	}
	switch k := OutputKind(raw); k {
	case OutputPDF, OutputExcel:
		return k, nil
	}
	return "", fmt.Errorf("unknown output kind: %q", raw)
}
