package services

import (
	"testing"

	"content-tracker-report/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveActiveClients(t *testing.T) {
	primary := []models.Client{
		{ID: "p-1", ClientName: "Acme", Status: models.ClientActive},
		{ID: "p-2", ClientName: "Globex", Status: models.ClientInactive},
	}
	strategy := []models.Client{
		{ClientID: "c-acme", Name: "Acme"},
		{ID: "s-2", Name: "Initech", Status: models.ClientDisabled},
	}

	set := ResolveActiveClients(primary, strategy)

	t.Run("active ids from every source", func(t *testing.T) {
		assert.Contains(t, set.IDs, "p-1")
		assert.Contains(t, set.IDs, "c-acme")
		assert.NotContains(t, set.IDs, "p-2")
		assert.NotContains(t, set.IDs, "s-2")
	})

	t.Run("names deduplicated across sources", func(t *testing.T) {
		assert.Contains(t, set.Names, "Acme")
		assert.NotContains(t, set.Names, "Globex")
		assert.NotContains(t, set.Names, "Initech")
		assert.Len(t, set.Names, 1)
	})

	t.Run("missing status counts as active", func(t *testing.T) {
		assert.Contains(t, set.Names, "Acme")
	})
}

func TestActiveClientSetAllows(t *testing.T) {
	set := ResolveActiveClients([]models.Client{
		{ClientID: "c-acme", ClientName: "Acme", Status: models.ClientActive},
	})

	t.Run("no client reference always passes", func(t *testing.T) {
		assert.True(t, set.Allows(models.Task{TaskName: "internal"}))
		assert.True(t, set.Allows(models.Task{ClientID: "N/A"}))
	})

	t.Run("matches by id or name", func(t *testing.T) {
		assert.True(t, set.Allows(models.Task{ClientID: "c-acme"}))
		assert.True(t, set.Allows(models.Task{ClientName: "Acme"}))
	})

	t.Run("named but unresolved client is suppressed", func(t *testing.T) {
		assert.False(t, set.Allows(models.Task{ClientName: "Globex"}))
		assert.False(t, set.Allows(models.Task{ClientID: "c-globex"}))
	})
}
