package services

import (
	"testing"
	"time"

	"content-tracker-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func activeSet(names ...string) ActiveClientSet {
	clients := make([]models.Client, 0, len(names))
	for _, name := range names {
		clients = append(clients, models.Client{ClientName: name, Status: models.ClientActive})
	}
	return ResolveActiveClients(clients)
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestFilterTasksPipelineVisibility(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusAssignedToDepartment},
		{ID: "t2", ClientName: "Acme", Status: models.StatusApproved},
		{ID: "t3", ClientName: "Acme", Status: models.StatusPosted},
		{ID: "t4", ClientName: "Acme", Status: models.StatusPendingClientApproval},
		{ID: "t5", ClientName: "Acme", Status: models.StatusRevisionRequired},
	}

	result := FilterTasks(tasks, activeSet("Acme"), models.FilterConfig{}, testNow)
	assert.Equal(t, []string{"t1", "t2", "t3"}, taskIDs(result))
}

func TestFilterTasksActiveClientSuppression(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusPosted},
		{ID: "t2", ClientName: "Globex", Status: models.StatusPosted},
		{ID: "t3", Status: models.StatusPosted}, // no client reference
	}

	result := FilterTasks(tasks, activeSet("Acme"), models.FilterConfig{}, testNow)
	assert.Equal(t, []string{"t1", "t3"}, taskIDs(result))
}

func TestFilterTasksMonth(t *testing.T) {
	tasks := []models.Task{
		{ID: "march", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-03-10"},
		{ID: "april", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-04-02"},
		{ID: "deadline-only", ClientName: "Acme", Status: models.StatusPosted, Deadline: "2024-03-20"},
		{ID: "dateless", ClientName: "Acme", Status: models.StatusPosted},
		{ID: "day-first", ClientName: "Acme", Status: models.StatusPosted, PostDate: "10/03/2024"},
	}
	active := activeSet("Acme")

	t.Run("prefix match on effective date", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Month: "2024-03"}, testNow)
		// Day-first dates compare raw, so "10/03/2024" does not match the
		// month key. Dateless tasks always pass.
		assert.Equal(t, []string{"march", "deadline-only", "dateless"}, taskIDs(result))
	})

	t.Run("other month", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Month: "2024-04"}, testNow)
		assert.Equal(t, []string{"april", "dateless"}, taskIDs(result))
	})

	t.Run("empty month passes everything", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{}, testNow)
		assert.Len(t, result, 5)
	})
}

func TestFilterTasksPeriod(t *testing.T) {
	tasks := []models.Task{
		{ID: "today", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-03-15"},
		{ID: "three-days", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-03-12"},
		{ID: "last-month", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-02-10"},
		{ID: "created-today", ClientName: "Acme", Status: models.StatusPosted, CreatedAt: "2024-03-15T08:00:00Z"},
	}
	active := activeSet("Acme")

	t.Run("day window", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Period: models.PeriodDay}, testNow)
		assert.Equal(t, []string{"today", "created-today"}, taskIDs(result))
	})

	t.Run("week window", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Period: models.PeriodWeek}, testNow)
		assert.Equal(t, []string{"today", "three-days", "created-today"}, taskIDs(result))
	})

	t.Run("month period is a no-op", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Period: models.PeriodMonth}, testNow)
		assert.Len(t, result, 4)
	})
}

func TestFilterTasksSearch(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme Corp", Status: models.StatusPosted, TaskName: "Spring reel"},
		{ID: "t2", ClientName: "Globex", Status: models.StatusPosted, AssignedTo: "Lina"},
		{ID: "t3", ClientName: "Initech", Status: models.StatusPosted, ProjectName: "ACME rebrand"},
	}
	active := activeSet("Acme Corp", "Globex", "Initech")

	result := FilterTasks(tasks, active, models.FilterConfig{Search: "acme"}, testNow)
	assert.Equal(t, []string{"t1", "t3"}, taskIDs(result))

	result = FilterTasks(tasks, active, models.FilterConfig{Search: "lina"}, testNow)
	assert.Equal(t, []string{"t2"}, taskIDs(result))

	result = FilterTasks(tasks, active, models.FilterConfig{Search: "  "}, testNow)
	assert.Len(t, result, 3)
}

func TestFilterTasksEmployee(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusPosted, AssignedTo: "Omar"},
		{ID: "t2", ClientName: "Acme", Status: models.StatusPosted, SocialMediaAssignedTo: "Omar"},
		{ID: "t3", ClientName: "Acme", Status: models.StatusPosted, AssignedTo: "Lina"},
		{ID: "t4", ClientName: "Acme", Status: models.StatusPosted},
	}
	active := activeSet("Acme")

	t.Run("matches either assignee field", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Employee: "Omar"}, testNow)
		assert.Equal(t, []string{"t1", "t2"}, taskIDs(result))
	})

	t.Run("head also owns unassigned tasks", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Employee: SocialMediaHeadLabel}, testNow)
		assert.Equal(t, []string{"t4"}, taskIDs(result))
	})

	t.Run("no partial matching", func(t *testing.T) {
		result := FilterTasks(tasks, active, models.FilterConfig{Employee: "Om"}, testNow)
		assert.Empty(t, result)
	})
}

func TestFilterTasksStatusAndCard(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusAssignedToDepartment},
		{ID: "t2", ClientName: "Acme", Status: models.StatusApproved},
		{ID: "t3", ClientName: "Acme", Status: models.StatusPosted},
	}
	active := activeSet("Acme")

	result := FilterTasks(tasks, active, models.FilterConfig{Status: models.StatusApproved}, testNow)
	assert.Equal(t, []string{"t2"}, taskIDs(result))

	result = FilterTasks(tasks, active, models.FilterConfig{Card: models.CardFilter("posted")}, testNow)
	assert.Equal(t, []string{"t3"}, taskIDs(result))

	result = FilterTasks(tasks, active, models.FilterConfig{Card: models.CardAll}, testNow)
	assert.Len(t, result, 3)
}

// Filters are AND-combined and independent, so applying them together must
// equal applying them one at a time.
func TestFilterTasksCompose(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-03-10", AssignedTo: "Omar"},
		{ID: "t2", ClientName: "Acme", Status: models.StatusApproved, PostDate: "2024-03-11", AssignedTo: "Omar"},
		{ID: "t3", ClientName: "Acme", Status: models.StatusPosted, PostDate: "2024-04-10", AssignedTo: "Omar"},
		{ID: "t4", ClientName: "Globex", Status: models.StatusPosted, PostDate: "2024-03-10", AssignedTo: "Lina"},
	}
	active := activeSet("Acme", "Globex")

	combined := FilterTasks(tasks, active, models.FilterConfig{
		Month:    "2024-03",
		Employee: "Omar",
		Status:   models.StatusPosted,
	}, testNow)

	sequential := FilterTasks(tasks, active, models.FilterConfig{Month: "2024-03"}, testNow)
	sequential = FilterTasks(sequential, active, models.FilterConfig{Employee: "Omar"}, testNow)
	sequential = FilterTasks(sequential, active, models.FilterConfig{Status: models.StatusPosted}, testNow)

	assert.Equal(t, taskIDs(sequential), taskIDs(combined))
	assert.Equal(t, []string{"t1"}, taskIDs(combined))
}

func TestFilterTasksDoesNotMutateInput(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusPosted},
		{ID: "t2", ClientName: "Acme", Status: models.StatusRevisionRequired},
	}
	FilterTasks(tasks, activeSet("Acme"), models.FilterConfig{}, testNow)

	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
	assert.Equal(t, "t2", tasks[1].ID)
}

func TestPendingApprovalTasks(t *testing.T) {
	tasks := []models.Task{
		{ID: "t1", ClientName: "Acme", Status: models.StatusPendingClientApproval, PostDate: "2024-03-10"},
		{ID: "t2", ClientName: "Acme", Status: models.StatusApproved, PostDate: "2024-03-11"},
		{ID: "t3", ClientName: "Globex", Status: models.StatusPendingClientApproval, PostDate: "2024-03-12"},
		{ID: "t4", ClientName: "Acme", Status: models.StatusPendingClientApproval, PostDate: "2024-04-01"},
	}
	active := activeSet("Acme")

	queue := PendingApprovalTasks(tasks, active, "2024-03")
	assert.Equal(t, []string{"t1"}, taskIDs(queue))

	// The approvals queue and the dashboard never share a task.
	dashboard := FilterTasks(tasks, active, models.FilterConfig{Month: "2024-03"}, testNow)
	for _, queued := range queue {
		assert.NotContains(t, taskIDs(dashboard), queued.ID)
	}
}
