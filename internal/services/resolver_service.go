package services

import "content-tracker-report/internal/models"

// ActiveClientSet is the deduplicated resolution of the three client
// collections: every id and name that belongs to a client whose latest known
// status is neither inactive nor disabled.
type ActiveClientSet struct {
	IDs   map[string]struct{}
	Names map[string]struct{}
}

// ResolveActiveClients merges the primary, strategy, and strategy-head client
// collections into one active set. The output is a function of the latest
// snapshot of all three sources; it is recomputed on every refresh rather
// than maintained incrementally.
func ResolveActiveClients(sources ...[]models.Client) ActiveClientSet {
	set := ActiveClientSet{
		IDs:   make(map[string]struct{}),
		Names: make(map[string]struct{}),
	}
	for _, source := range sources {
		for _, client := range source {
			if !client.IsActive() {
				continue
			}
			if client.ClientID != "" {
				set.IDs[client.ClientID] = struct{}{}
			} else if client.ID != "" {
				set.IDs[client.ID] = struct{}{}
			}
			if name := client.DisplayName(); name != "" {
				set.Names[name] = struct{}{}
			}
		}
	}
	return set
}

// Allows reports whether a task survives active-client suppression. A task is
// excluded only when it names a client id or name and neither appears in the
// active sets; tasks with no client reference always pass.
func (s ActiveClientSet) Allows(task models.Task) bool {
	if !task.HasClientRef() {
		return true
	}
	if task.ClientID != "" && task.ClientID != "N/A" {
		if _, ok := s.IDs[task.ClientID]; ok {
			return true
		}
	}
	if task.ClientName != "" {
		if _, ok := s.Names[task.ClientName]; ok {
			return true
		}
	}
	return false
}
