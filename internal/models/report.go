package models

// GroupCounts holds the per-group aggregate counters shown in section headers
type GroupCounts struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`  // posted
	InProgress int `json:"inProgress"` // approved
	Pending    int `json:"pending"`    // assigned-to-department
}

// ReportRow is one task rendered as a fixed-column row. The same row model
// feeds both the paginated PDF table and the flat spreadsheet output.
type ReportRow struct {
	TaskName   string `json:"taskName"`   // truncated to the display width
	Department string `json:"department"` // uppercased
	PostDate   string `json:"postDate"`   // postDate, else deadline, else "N/A"
	Status     string `json:"status"`     // hyphens replaced, uppercased, bounded
	PostedAt   string `json:"postedAt"`   // formatted timestamp or placeholder
}

// ClientSection is a nested per-client block inside an employee section,
// or a top-level section in by-client grouping mode.
type ClientSection struct {
	ClientName string      `json:"clientName"`
	Counts     GroupCounts `json:"counts"`
	Rows       []ReportRow `json:"rows"`
}

// ReportSection is one top-level group: an employee in employee-then-client
// mode, where Clients carries the nested partition.
type ReportSection struct {
	Title   string          `json:"title"`
	Counts  GroupCounts     `json:"counts"`
	Clients []ClientSection `json:"clients,omitempty"`
}

// Report is the renderer-agnostic document model consumed by the PDF and
// spreadsheet renderers. It assumes nothing about either target.
type Report struct {
	Title       string          `json:"title"`
	GeneratedAt string          `json:"generatedAt"` // ISO 8601
	Month       string          `json:"month,omitempty"`
	Mode        GroupingMode    `json:"mode"`
	TotalTasks  int             `json:"totalTasks"`
	GroupCount  int             `json:"groupCount"`
	Summary     string          `json:"summary,omitempty"` // optional AI paragraph
	Sections    []ReportSection `json:"sections"`
}

// ClientGroup is a screen-level partition of tasks by client, preserving
// first-appearance order.
type ClientGroup struct {
	ClientName string `json:"clientName"`
	Tasks      []Task `json:"tasks"`
	Total      int    `json:"total"`
	Posted     int    `json:"posted"`
	Approved   int    `json:"approved"`
}

// EmployeeGroup is a two-level partition of tasks by employee then client
type EmployeeGroup struct {
	EmployeeName string        `json:"employeeName"`
	Clients      []ClientGroup `json:"clients"`
	Counts       GroupCounts   `json:"counts"`
}

// EmployeeRank is one entry of the performance ranking
type EmployeeRank struct {
	EmployeeName   string `json:"employeeName"`
	Rank           int    `json:"rank"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completionRate"` // percent
}

// CalendarDay is one day bucket of the calendar month view
type CalendarDay struct {
	Day   int    `json:"day"`
	Tasks []Task `json:"tasks"`
}

// DashboardStats are the card counters shown above the dashboard table
type DashboardStats struct {
	Total    int `json:"total"`
	Assigned int `json:"assigned"`
	Approved int `json:"approved"`
	Posted   int `json:"posted"`
}
