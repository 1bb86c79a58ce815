package validation

import (
	"os"
	"testing"

	"content-tracker-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) *TaskValidator {
	t.Helper()
	data, err := os.ReadFile("../../schemas/task_schema.json")
	require.NoError(t, err)
	validator, err := NewTaskValidatorFromBytes(data)
	require.NoError(t, err)
	return validator
}

func TestParseTask(t *testing.T) {
	validator := newTestValidator(t)

	t.Run("valid document", func(t *testing.T) {
		task, err := validator.ParseTask(map[string]interface{}{
			"_id":        "t1",
			"clientName": "Acme",
			"taskName":   "Spring reel",
			"department": "video",
			"status":     "approved",
			"adCost":     149.5,
		})
		require.NoError(t, err)

		assert.Equal(t, "t1", task.ID)
		assert.Equal(t, "Acme", task.ClientName)
		assert.Equal(t, models.StatusApproved, task.Status)
		assert.Equal(t, models.DepartmentVideo, task.Department)
		assert.Equal(t, 149.5, task.AdCost)
	})

	t.Run("missing status rejected", func(t *testing.T) {
		_, err := validator.ParseTask(map[string]interface{}{"_id": "t1"})
		assert.Error(t, err)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := validator.ParseTask(map[string]interface{}{
			"_id":    "t1",
			"status": "done",
		})
		assert.Error(t, err)
	})

	t.Run("unknown department rejected", func(t *testing.T) {
		_, err := validator.ParseTask(map[string]interface{}{
			"_id":        "t1",
			"status":     "posted",
			"department": "sales",
		})
		assert.Error(t, err)
	})

	t.Run("negative ad cost rejected", func(t *testing.T) {
		_, err := validator.ParseTask(map[string]interface{}{
			"_id":    "t1",
			"status": "posted",
			"adCost": -1,
		})
		assert.Error(t, err)
	})

	t.Run("legacy statuses accepted", func(t *testing.T) {
		task, err := validator.ParseTask(map[string]interface{}{
			"_id":    "t1",
			"status": "in-progress",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusInProgress, task.Status)
	})
}
