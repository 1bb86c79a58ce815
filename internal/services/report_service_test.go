package services

import (
	"testing"
	"time"

	"content-tracker-report/internal/database"
	"content-tracker-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupTasksByClient(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusPosted},
		{ID: "t2", ClientName: "Globex", Status: models.StatusApproved},
		{ID: "t3", ClientName: "Acme", Status: models.StatusApproved},
		{ID: "t4", Status: models.StatusAssignedToDepartment},
	}

	groups := GroupTasksByClient(tasks)
	require.Len(t, groups, 3)

	t.Run("first-appearance order", func(t *testing.T) {
		assert.Equal(t, "Acme", groups[0].ClientName)
		assert.Equal(t, "Globex", groups[1].ClientName)
		assert.Equal(t, models.UnknownClientLabel, groups[2].ClientName)
	})

	t.Run("per-group counters", func(t *testing.T) {
		assert.Equal(t, 2, groups[0].Total)
		assert.Equal(t, 1, groups[0].Posted)
		assert.Equal(t, 1, groups[0].Approved)
		assert.Equal(t, 1, groups[1].Total)
		assert.Equal(t, 0, groups[1].Posted)
	})

	t.Run("union of groups is the input", func(t *testing.T) {
		total := 0
		for _, group := range groups {
			total += len(group.Tasks)
		}
		assert.Equal(t, len(tasks), total)
	})
}

func TestGroupTasksByEmployee(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", AssignedTo: "Omar", Status: models.StatusPosted},
		{ID: "t2", ClientName: "Globex", SocialMediaAssignedTo: "Lina", Status: models.StatusApproved},
		{ID: "t3", ClientName: "Acme", AssignedTo: "Omar", Status: models.StatusAssignedToDepartment},
		{ID: "t4", ClientName: "Acme", Status: models.StatusPosted},
	}

	groups := GroupTasksByEmployee(tasks)
	require.Len(t, groups, 3)

	assert.Equal(t, "Omar", groups[0].EmployeeName)
	assert.Equal(t, "Lina", groups[1].EmployeeName)
	assert.Equal(t, models.UnassignedLabel, groups[2].EmployeeName)

	assert.Equal(t, 2, groups[0].Counts.Total)
	assert.Equal(t, 1, groups[0].Counts.Completed)
	assert.Equal(t, 1, groups[0].Counts.Pending)

	require.Len(t, groups[0].Clients, 1)
	assert.Equal(t, "Acme", groups[0].Clients[0].ClientName)
}

func TestCompletionRate(t *testing.T) {
	cases := []struct {
		posted, approved, expected int
	}{
		{0, 0, 0},
		{1, 1, 50},
		{2, 1, 67},
		{1, 2, 33},
		{3, 0, 100},
		{0, 5, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, CompletionRate(tc.posted, tc.approved),
			"posted=%d approved=%d", tc.posted, tc.approved)
	}
}

func TestRankEmployees(t *testing.T) {
	groups := []models.EmployeeGroup{
		{EmployeeName: "Omar", Counts: models.GroupCounts{Total: 4, Completed: 2}},
		{EmployeeName: "Lina", Counts: models.GroupCounts{Total: 2, Completed: 2}},
		{EmployeeName: "Sara", Counts: models.GroupCounts{Total: 4, Completed: 4}},
		{EmployeeName: "Idle", Counts: models.GroupCounts{Total: 0}},
	}

	ranks := RankEmployees(groups)
	require.Len(t, ranks, 4)

	// 100% rate ties break on total task count.
	assert.Equal(t, "Sara", ranks[0].EmployeeName)
	assert.Equal(t, 1, ranks[0].Rank)
	assert.Equal(t, "Lina", ranks[1].EmployeeName)
	assert.Equal(t, "Omar", ranks[2].EmployeeName)
	assert.Equal(t, 50, ranks[2].CompletionRate)
	assert.Equal(t, "Idle", ranks[3].EmployeeName)
	assert.Equal(t, 0, ranks[3].CompletionRate)
	assert.Equal(t, 4, ranks[3].Rank)
}

func TestCalendarDays(t *testing.T) {
	tasks := []models.Task{
		{ID: "slash", Status: models.StatusPosted, PostDate: "15/03/2024"},
		{ID: "iso", Status: models.StatusApproved, PostDate: "2024-03-15"},
		{ID: "other-day", Status: models.StatusPosted, PostDate: "2024-03-01"},
		{ID: "other-month", Status: models.StatusPosted, PostDate: "2024-04-15"},
		{ID: "hidden", Status: models.StatusPendingClientApproval, PostDate: "2024-03-15"},
		{ID: "dateless", Status: models.StatusPosted},
	}

	days, err := CalendarDays(tasks, "2024-03")
	require.NoError(t, err)
	require.Len(t, days, 31)

	t.Run("both date formats land on the same day", func(t *testing.T) {
		assert.Equal(t, []string{"slash", "iso"}, taskIDs(days[14].Tasks))
	})

	t.Run("first day", func(t *testing.T) {
		assert.Equal(t, []string{"other-day"}, taskIDs(days[0].Tasks))
	})

	t.Run("other months and hidden statuses excluded", func(t *testing.T) {
		total := 0
		for _, day := range days {
			total += len(day.Tasks)
		}
		assert.Equal(t, 3, total)
	})

	t.Run("invalid month key", func(t *testing.T) {
		_, err := CalendarDays(tasks, "march")
		assert.Error(t, err)
	})
}

func TestComputeDashboardStats(t *testing.T) {
	tasks := []models.Task{
		{Status: models.StatusAssignedToDepartment},
		{Status: models.StatusAssignedToDepartment},
		{Status: models.StatusApproved},
		{Status: models.StatusPosted},
	}

	stats := ComputeDashboardStats(tasks)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.Assigned)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 1, stats.Posted)
}

func TestAssembleReport(t *testing.T) {
	now := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", TaskName: "Spring reel", Department: models.DepartmentVideo,
			AssignedTo: "Omar", Status: models.StatusPosted, PostDate: "2024-03-10",
			PostedAt: "2024-03-10T14:30:00Z"},
		{ID: "t2", ClientName: "Acme", TaskName: "Poster", Department: models.DepartmentGraphics,
			AssignedTo: "Omar", Status: models.StatusApproved, Deadline: "2024-03-12"},
		{ID: "t3", ClientName: "Globex", TaskName: "Launch post",
			Status: models.StatusAssignedToDepartment},
	}

	t.Run("empty subset", func(t *testing.T) {
		_, err := AssembleReport(nil, models.GroupByClient, "2024-03", now)
		var emptyErr *models.EmptyResultError
		assert.ErrorAs(t, err, &emptyErr)
	})

	t.Run("by employee", func(t *testing.T) {
		report, err := AssembleReport(tasks, models.GroupByEmployeeThenClient, "2024-03", now)
		require.NoError(t, err)

		assert.Equal(t, 3, report.TotalTasks)
		assert.Equal(t, 2, report.GroupCount)
		require.Len(t, report.Sections, 2)

		omar := report.Sections[0]
		assert.Equal(t, "Omar", omar.Title)
		assert.Equal(t, 2, omar.Counts.Total)
		require.Len(t, omar.Clients, 1)
		assert.Equal(t, "Acme", omar.Clients[0].ClientName)

		assert.Equal(t, models.UnassignedLabel, report.Sections[1].Title)
	})

	t.Run("by client wraps a single client section", func(t *testing.T) {
		report, err := AssembleReport(tasks, models.GroupByClient, "2024-03", now)
		require.NoError(t, err)

		require.Len(t, report.Sections, 2)
		assert.Equal(t, "Acme", report.Sections[0].Title)
		require.Len(t, report.Sections[0].Clients, 1)
		assert.Len(t, report.Sections[0].Clients[0].Rows, 2)
	})

	t.Run("row formatting", func(t *testing.T) {
		report, err := AssembleReport(tasks, models.GroupByClient, "2024-03", now)
		require.NoError(t, err)

		rows := report.Sections[0].Clients[0].Rows
		assert.Equal(t, "Spring reel", rows[0].TaskName)
		assert.Equal(t, "VIDEO", rows[0].Department)
		assert.Equal(t, "2024-03-10", rows[0].PostDate)
		assert.Equal(t, "POSTED", rows[0].Status)
		assert.Equal(t, "Mar 10, 2024 14:30", rows[0].PostedAt)

		// Deadline fallback and the posted-at placeholder.
		assert.Equal(t, "2024-03-12", rows[1].PostDate)
		assert.Equal(t, "-", rows[1].PostedAt)

		dateless := report.Sections[1].Clients[0].Rows[0]
		assert.Equal(t, "N/A", dateless.PostDate)
	})

	t.Run("long task names truncated", func(t *testing.T) {
		long := []models.Task{{
			ID:         "t1",
			ClientName: "Acme",
			TaskName:   "An extremely long content task name that overflows the column",
			Status:     models.StatusPosted,
		}}
		report, err := AssembleReport(long, models.GroupByClient, "", now)
		require.NoError(t, err)

		name := report.Sections[0].Clients[0].Rows[0].TaskName
		assert.Len(t, []rune(name), taskNameWidth)
		assert.Contains(t, name, "...")
	})
}

func TestReportServiceGenerateReport(t *testing.T) {
	snapshots := NewSnapshotService(nil)
	snapshots.ReplaceClients(database.SourcePrimary, []models.Client{
		{ClientName: "Acme", Status: models.ClientActive},
	})
	snapshots.ReplaceTasks(map[string]models.Task{
		"t1": {ID: "t1", ClientName: "Acme", AssignedTo: "Omar",
			Status: models.StatusPosted, PostDate: "2024-03-10", CreatedAt: "2024-03-01T00:00:00Z"},
		"t2": {ID: "t2", ClientName: "Acme", AssignedTo: "Omar",
			Status: models.StatusApproved, PostDate: "2024-03-11", CreatedAt: "2024-03-02T00:00:00Z"},
	})

	service := NewReportService(snapshots, nil)

	report, err := service.GenerateReport(models.FilterConfig{Month: "2024-03"}, models.GroupByEmployeeThenClient, testNow)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalTasks)
	assert.Equal(t, "2024-03", report.Month)
	assert.Empty(t, report.Summary)

	_, err = service.GenerateReport(models.FilterConfig{Month: "2030-01"}, models.GroupByClient, testNow)
	var emptyErr *models.EmptyResultError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestReportServiceEmployeePerformance(t *testing.T) {
	snapshots := NewSnapshotService(nil)
	snapshots.ReplaceClients(database.SourcePrimary, []models.Client{
		{ClientName: "Acme", Status: models.ClientActive},
	})
	snapshots.ReplaceTasks(map[string]models.Task{
		"t1": {ID: "t1", ClientName: "Acme", AssignedTo: "Omar", Status: models.StatusPosted, PostDate: "2024-03-10"},
		"t2": {ID: "t2", ClientName: "Acme", AssignedTo: "Omar", Status: models.StatusApproved, PostDate: "2024-03-11"},
		"t3": {ID: "t3", ClientName: "Acme", AssignedTo: "Lina", Status: models.StatusPosted, PostDate: "2024-03-12"},
	})

	service := NewReportService(snapshots, nil)
	ranks := service.EmployeePerformance("2024-03", testNow)
	require.Len(t, ranks, 2)
	assert.Equal(t, "Lina", ranks[0].EmployeeName)
	assert.Equal(t, 100, ranks[0].CompletionRate)
	assert.Equal(t, "Omar", ranks[1].EmployeeName)
	assert.Equal(t, 50, ranks[1].CompletionRate)
}
