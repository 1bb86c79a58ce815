package services

import (
	"strings"
	"time"

	"content-tracker-report/internal/models"
	"content-tracker-report/internal/utils"
)

// SocialMediaHeadLabel is the special employee filter value that also matches
// tasks with no assignee at all.
const SocialMediaHeadLabel = "Social Media Head"

// FilterTasks selects the pipeline-visible subset of a snapshot matching the
// given configuration. All predicates are AND-combined and commute; the
// pipeline-visibility and active-client checks always run first because the
// narrower filters assume pipeline-visible statuses. Pure: the input slice is
// never mutated and the output preserves input order.
func FilterTasks(tasks []models.Task, active ActiveClientSet, cfg models.FilterConfig, now time.Time) []models.Task {
	var result []models.Task
	for _, task := range tasks {
		if !task.Status.PipelineVisible() {
			continue
		}
		if !active.Allows(task) {
			continue
		}
		if !matchesMonth(task, cfg.Month) {
			continue
		}
		if !matchesPeriod(task, cfg.Period, now) {
			continue
		}
		if !matchesSearch(task, cfg.Search) {
			continue
		}
		if !matchesEmployee(task, cfg.Employee) {
			continue
		}
		if cfg.Client != "" && task.ClientName != cfg.Client {
			continue
		}
		if cfg.Status != "" && task.Status != cfg.Status {
			continue
		}
		if !matchesCard(task, cfg.Card) {
			continue
		}
		result = append(result, task)
	}
	return result
}

// PendingApprovalTasks selects the approvals queue: pending-client-approval
// tasks for active clients. Disjoint from every dashboard/report view.
func PendingApprovalTasks(tasks []models.Task, active ActiveClientSet, month string) []models.Task {
	var result []models.Task
	for _, task := range tasks {
		if task.Status != models.StatusPendingClientApproval {
			continue
		}
		if !active.Allows(task) {
			continue
		}
		if !matchesMonth(task, month) {
			continue
		}
		result = append(result, task)
	}
	return result
}

// matchesMonth matches the YYYY-MM key as a raw prefix of the effective date.
// Dateless tasks always pass. Deliberately unnormalized: day-first post dates
// do not match a month key here, which mirrors the calendar view applying
// normalization only for day bucketing.
func matchesMonth(task models.Task, month string) bool {
	if month == "" {
		return true
	}
	date := task.EffectiveDate()
	if date == "" {
		return true
	}
	return strings.HasPrefix(date, month)
}

// matchesPeriod applies the report time-period window. The effective date for
// period bucketing is postDate, falling back to createdAt.
func matchesPeriod(task models.Task, period models.TimePeriod, now time.Time) bool {
	if period == "" || period == models.PeriodMonth {
		return true
	}

	dateStr := task.PostDate
	if dateStr == "" {
		dateStr = task.CreatedAt
	}
	if dateStr == "" {
		return false
	}
	date, err := utils.ParsePostDate(dateStr)
	if err != nil {
		return false
	}

	switch period {
	case models.PeriodDay:
		return utils.SameCalendarDay(date, now)
	case models.PeriodWeek:
		return utils.WithinTrailingWeek(date, now)
	}
	return true
}

// matchesSearch is a case-insensitive substring match ORed across the
// client, task, project, and assignee fields.
func matchesSearch(task models.Task, query string) bool {
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return true
	}
	fields := []string{
		task.ClientName,
		task.ClientID,
		task.TaskName,
		task.ProjectName,
		task.AssignedTo,
		task.SubmittedBy,
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// matchesEmployee matches either assignee field exactly. The Social Media
// Head also owns unassigned tasks, so that literal matches an empty assignee.
func matchesEmployee(task models.Task, employee string) bool {
	if employee == "" {
		return true
	}
	if task.AssignedTo == employee || task.SocialMediaAssignedTo == employee {
		return true
	}
	if employee == SocialMediaHeadLabel {
		return task.AssignedTo == "" && task.SocialMediaAssignedTo == ""
	}
	return false
}

// matchesCard applies the dashboard quick-filter category
func matchesCard(task models.Task, card models.CardFilter) bool {
	if card == "" || card == models.CardAll {
		return true
	}
	return task.Status == models.TaskStatus(card)
}
