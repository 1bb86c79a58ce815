package services

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"content-tracker-report/internal/models"
	"content-tracker-report/internal/utils"
)

// Report row display bounds
const (
	taskNameWidth = 40
	statusWidth   = 20
)

// postedAtPlaceholder fills the posted-at column for tasks not yet posted
const postedAtPlaceholder = "-"

// ReportService assembles grouped, renderer-agnostic report documents from a
// snapshot. The grouping and aggregation functions are pure; only the report
// entry points touch the snapshot and the optional insights service.
type ReportService struct {
	snapshots *SnapshotService
	insights  *InsightsService
}

// NewReportService creates a new report service. The insights service may be
// nil, which disables summary paragraphs.
func NewReportService(snapshots *SnapshotService, insights *InsightsService) *ReportService {
	return &ReportService{
		snapshots: snapshots,
		insights:  insights,
	}
}

// GroupTasksByClient partitions a task subset by client name, preserving the
// encounter order of first appearance. Tasks naming no client fall into the
// Unknown Client group.
func GroupTasksByClient(tasks []models.Task) []models.ClientGroup {
	index := make(map[string]int)
	var groups []models.ClientGroup

	for _, task := range tasks {
		key := task.ClientKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, models.ClientGroup{ClientName: key})
		}
		groups[i].Tasks = append(groups[i].Tasks, task)
		groups[i].Total++
		switch task.Status {
		case models.StatusPosted:
			groups[i].Posted++
		case models.StatusApproved:
			groups[i].Approved++
		}
	}
	return groups
}

// GroupTasksByEmployee produces the two-level employee-then-client partition
// used by reports and exports. The employee key is socialMediaAssignedTo,
// else assignedTo, else Unassigned.
func GroupTasksByEmployee(tasks []models.Task) []models.EmployeeGroup {
	index := make(map[string]int)
	var groups []models.EmployeeGroup
	buckets := make(map[string][]models.Task)
	var order []string

	for _, task := range tasks {
		key := task.EmployeeKey()
		if _, ok := index[key]; !ok {
			index[key] = len(order)
			order = append(order, key)
		}
		buckets[key] = append(buckets[key], task)
	}

	for _, key := range order {
		bucket := buckets[key]
		group := models.EmployeeGroup{
			EmployeeName: key,
			Clients:      GroupTasksByClient(bucket),
			Counts:       countByStatus(bucket),
		}
		groups = append(groups, group)
	}
	return groups
}

// countByStatus computes the per-group aggregate counters
func countByStatus(tasks []models.Task) models.GroupCounts {
	counts := models.GroupCounts{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.StatusPosted:
			counts.Completed++
		case models.StatusApproved:
			counts.InProgress++
		case models.StatusAssignedToDepartment:
			counts.Pending++
		}
	}
	return counts
}

// CompletionRate is round(posted / (posted + approved) * 100), or 0 when the
// denominator is 0.
func CompletionRate(posted, approved int) int {
	total := posted + approved
	if total == 0 {
		return 0
	}
	return int(float64(posted)/float64(total)*100 + 0.5)
}

// RankEmployees sorts employee groups by completion rate (completed/total)
// descending, ties broken by total task count descending.
func RankEmployees(groups []models.EmployeeGroup) []models.EmployeeRank {
	ranks := make([]models.EmployeeRank, 0, len(groups))
	for _, group := range groups {
		rate := 0
		if group.Counts.Total > 0 {
			rate = int(float64(group.Counts.Completed)/float64(group.Counts.Total)*100 + 0.5)
		}
		ranks = append(ranks, models.EmployeeRank{
			EmployeeName:   group.EmployeeName,
			Total:          group.Counts.Total,
			Completed:      group.Counts.Completed,
			CompletionRate: rate,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].CompletionRate != ranks[j].CompletionRate {
			return ranks[i].CompletionRate > ranks[j].CompletionRate
		}
		return ranks[i].Total > ranks[j].Total
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}

// CalendarDays buckets pipeline-visible tasks into the days of a month by
// normalized post date. Tasks without a parseable post date are left out.
func CalendarDays(tasks []models.Task, monthKey string) ([]models.CalendarDay, error) {
	numDays, err := utils.DaysInMonth(monthKey)
	if err != nil {
		return nil, err
	}

	days := make([]models.CalendarDay, numDays)
	for i := range days {
		days[i].Day = i + 1
	}

	for _, task := range tasks {
		if !task.Status.PipelineVisible() || task.PostDate == "" {
			continue
		}
		date, err := utils.ParsePostDate(task.PostDate)
		if err != nil {
			continue
		}
		if utils.MonthKey(date) != monthKey {
			continue
		}
		day := date.Day()
		days[day-1].Tasks = append(days[day-1].Tasks, task)
	}
	return days, nil
}

// ComputeDashboardStats derives the card counters from a filtered subset
func ComputeDashboardStats(tasks []models.Task) models.DashboardStats {
	stats := models.DashboardStats{Total: len(tasks)}
	for _, task := range tasks {
		switch task.Status {
		case models.StatusAssignedToDepartment:
			stats.Assigned++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusPosted:
			stats.Posted++
		}
	}
	return stats
}

// AssembleReport turns a task subset into the ordered document model consumed
// by the PDF and spreadsheet renderers. Returns EmptyResultError when the
// subset is empty.
func AssembleReport(tasks []models.Task, mode models.GroupingMode, month string, now time.Time) (*models.Report, error) {
	if len(tasks) == 0 {
		return nil, &models.EmptyResultError{Context: fmt.Sprintf("report (month=%s)", month)}
	}

	report := &models.Report{
		Title:       "Social Media Content Report",
		GeneratedAt: utils.FormatTimestamp(now),
		Month:       month,
		Mode:        mode,
		TotalTasks:  len(tasks),
	}

	switch mode {
	case models.GroupByClient:
		for _, group := range GroupTasksByClient(tasks) {
			section := models.ReportSection{
				Title:  group.ClientName,
				Counts: countByStatus(group.Tasks),
				Clients: []models.ClientSection{{
					ClientName: group.ClientName,
					Counts:     countByStatus(group.Tasks),
					Rows:       buildRows(group.Tasks),
				}},
			}
			report.Sections = append(report.Sections, section)
		}
	default:
		for _, group := range GroupTasksByEmployee(tasks) {
			section := models.ReportSection{
				Title:  group.EmployeeName,
				Counts: group.Counts,
			}
			for _, clientGroup := range group.Clients {
				section.Clients = append(section.Clients, models.ClientSection{
					ClientName: clientGroup.ClientName,
					Counts:     countByStatus(clientGroup.Tasks),
					Rows:       buildRows(clientGroup.Tasks),
				})
			}
			report.Sections = append(report.Sections, section)
		}
	}

	report.GroupCount = len(report.Sections)
	return report, nil
}

// buildRows maps tasks to fixed-column report rows
func buildRows(tasks []models.Task) []models.ReportRow {
	rows := make([]models.ReportRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, buildRow(task))
	}
	return rows
}

func buildRow(task models.Task) models.ReportRow {
	name := task.TaskName
	if name == "" {
		name = task.Description
	}

	postDate := task.PostDate
	if postDate == "" {
		postDate = task.Deadline
	}
	if postDate == "" {
		postDate = "N/A"
	}

	postedAt := postedAtPlaceholder
	if task.PostedAt != "" {
		if t, err := time.Parse(time.RFC3339, task.PostedAt); err == nil {
			postedAt = t.Format("Jan 2, 2006 15:04")
		} else {
			postedAt = task.PostedAt
		}
	}

	return models.ReportRow{
		TaskName:   truncate(name, taskNameWidth),
		Department: strings.ToUpper(string(task.Department)),
		PostDate:   postDate,
		Status:     truncate(task.Status.Display(), statusWidth),
		PostedAt:   postedAt,
	}
}

// truncate bounds a string to max runes, appending an ellipsis when cut
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// GenerateReport filters the current snapshot with cfg, assembles the report,
// and attaches an AI summary when the insights service is configured.
func (s *ReportService) GenerateReport(cfg models.FilterConfig, mode models.GroupingMode, now time.Time) (*models.Report, error) {
	snapshot := s.snapshots.Snapshot()
	tasks := FilterTasks(snapshot.Tasks, snapshot.ActiveClients, cfg, now)

	report, err := AssembleReport(tasks, mode, cfg.Month, now)
	if err != nil {
		return nil, err
	}

	if s.insights != nil {
		summary, err := s.insights.SummarizeReport(report)
		if err != nil {
			// A missing summary never fails the report
			log.Printf("WARNING: Failed to generate report summary: %v", err)
		} else {
			report.Summary = summary
		}
	}
	return report, nil
}

// EmployeePerformance computes the ranking over the current snapshot for the
// given month.
func (s *ReportService) EmployeePerformance(month string, now time.Time) []models.EmployeeRank {
	snapshot := s.snapshots.Snapshot()
	tasks := FilterTasks(snapshot.Tasks, snapshot.ActiveClients, models.FilterConfig{Month: month}, now)
	return RankEmployees(GroupTasksByEmployee(tasks))
}
