package models

import (
	"fmt"
	"strings"
)

// TaskStatus represents the workflow status of a content task
type TaskStatus string

const (
	StatusAssignedToDepartment  TaskStatus = "assigned-to-department"
	StatusPendingClientApproval TaskStatus = "pending-client-approval"
	StatusApproved              TaskStatus = "approved"
	StatusRevisionRequired      TaskStatus = "revision-required"
	StatusPosted                TaskStatus = "posted"
	// Legacy statuses still present in older task documents
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus validates a raw status string at the ingestion boundary.
// Unknown values are rejected rather than falling through to a default.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	switch s := TaskStatus(raw); s {
	case StatusAssignedToDepartment, StatusPendingClientApproval, StatusApproved,
		StatusRevisionRequired, StatusPosted, StatusInProgress, StatusCompleted:
		return s, nil
	}
	return "", fmt.Errorf("unknown task status: %q", raw)
}

// PipelineVisible reports whether a task with this status is shown in
// dashboard, calendar, and report views. Pending-approval tasks only appear
// in the approvals queue.
func (s TaskStatus) PipelineVisible() bool {
	return s == StatusAssignedToDepartment || s == StatusApproved || s == StatusPosted
}

// Display formats a status for report output: hyphens become spaces, uppercased.
func (s TaskStatus) Display() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "-", " "))
}

// Department represents the team that owns a task
type Department string

const (
	DepartmentVideo       Department = "video"
	DepartmentGraphics    Department = "graphics"
	DepartmentSocialMedia Department = "social-media"
)

// ParseDepartment validates a raw department string
func ParseDepartment(raw string) (Department, error) {
	switch d := Department(raw); d {
	case DepartmentVideo, DepartmentGraphics, DepartmentSocialMedia:
		return d, nil
	}
	return "", fmt.Errorf("unknown department: %q", raw)
}

// AdType represents the marketing objective of a paid promotion
type AdType string

const (
	AdTypeBrandAwareness AdType = "brand-awareness"
	AdTypeReach          AdType = "reach"
	AdTypeTraffic        AdType = "traffic"
	AdTypeEngagement     AdType = "engagement"
	AdTypeLeadGeneration AdType = "lead-generation"
	AdTypeConversions    AdType = "conversions"
)

// ParseAdType validates a raw ad type string
func ParseAdType(raw string) (AdType, error) {
	switch a := AdType(raw); a {
	case AdTypeBrandAwareness, AdTypeReach, AdTypeTraffic,
		AdTypeEngagement, AdTypeLeadGeneration, AdTypeConversions:
		return a, nil
	}
	return "", fmt.Errorf("unknown ad type: %q", raw)
}

// Fallback labels for tasks without an assignee or client reference
const (
	UnassignedLabel    = "Unassigned"
	UnknownClientLabel = "Unknown Client"
	NotAssignedLabel   = "Not Assigned"
)

// Task represents a content task moving through the publishing workflow
type Task struct {
	ID                    string     `bson:"_id" json:"id"`
	ClientName            string     `bson:"clientName,omitempty" json:"clientName,omitempty"`
	ClientID              string     `bson:"clientId,omitempty" json:"clientId,omitempty"`
	Department            Department `bson:"department,omitempty" json:"department,omitempty"`
	OriginalDepartment    Department `bson:"originalDepartment,omitempty" json:"originalDepartment,omitempty"`
	TaskType              string     `bson:"taskType,omitempty" json:"taskType,omitempty"`
	TaskName              string     `bson:"taskName,omitempty" json:"taskName,omitempty"`
	ProjectName           string     `bson:"projectName,omitempty" json:"projectName,omitempty"`
	Description           string     `bson:"description,omitempty" json:"description,omitempty"`
	PostDate              string     `bson:"postDate,omitempty" json:"postDate,omitempty"`
	Deadline              string     `bson:"deadline,omitempty" json:"deadline,omitempty"`
	CreatedAt             string     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	LastUpdated           string     `bson:"lastUpdated,omitempty" json:"lastUpdated,omitempty"`
	Status                TaskStatus `bson:"status" json:"status"`
	ClientApproved        bool       `bson:"clientApproved" json:"clientApproved"`
	ApprovedAt            string     `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	ApprovedBy            string     `bson:"approvedBy,omitempty" json:"approvedBy,omitempty"`
	RevisionCount         int        `bson:"revisionCount" json:"revisionCount"`
	RevisionMessage       string     `bson:"revisionMessage,omitempty" json:"revisionMessage,omitempty"`
	RevisionRequestedAt   string     `bson:"revisionRequestedAt,omitempty" json:"revisionRequestedAt,omitempty"`
	RevisionRequestedBy   string     `bson:"revisionRequestedBy,omitempty" json:"revisionRequestedBy,omitempty"`
	LastRevisionAt        string     `bson:"lastRevisionAt,omitempty" json:"lastRevisionAt,omitempty"`
	AssignedTo            string     `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	SocialMediaAssignedTo string     `bson:"socialMediaAssignedTo,omitempty" json:"socialMediaAssignedTo,omitempty"`
	AssignedBy            string     `bson:"assignedBy,omitempty" json:"assignedBy,omitempty"`
	AssignedByName        string     `bson:"assignedByName,omitempty" json:"assignedByName,omitempty"`
	SubmittedBy           string     `bson:"submittedBy,omitempty" json:"submittedBy,omitempty"`
	PostedAt              string     `bson:"postedAt,omitempty" json:"postedAt,omitempty"`
	AdsRun                bool       `bson:"adsRun" json:"adsRun"`
	AdType                AdType     `bson:"adType,omitempty" json:"adType,omitempty"`
	AdCost                float64    `bson:"adCost,omitempty" json:"adCost,omitempty"`
}

// EffectiveDate returns the postDate if present, otherwise the deadline.
// An empty string means the task is dateless.
func (t Task) EffectiveDate() string {
	if t.PostDate != "" {
		return t.PostDate
	}
	return t.Deadline
}

// HasClientRef reports whether the task names a client at all.
// "N/A" counts the same as an absent clientId.
func (t Task) HasClientRef() bool {
	return t.ClientName != "" || (t.ClientID != "" && t.ClientID != "N/A")
}

// ClientKey returns the grouping key for the task's client, falling back to
// the Unknown Client label when the task names no client.
func (t Task) ClientKey() string {
	if t.ClientName != "" {
		return t.ClientName
	}
	return UnknownClientLabel
}

// EmployeeKey returns the grouping key for the task's assignee:
// socialMediaAssignedTo, else assignedTo, else the Unassigned label.
func (t Task) EmployeeKey() string {
	if t.SocialMediaAssignedTo != "" {
		return t.SocialMediaAssignedTo
	}
	if t.AssignedTo != "" {
		return t.AssignedTo
	}
	return UnassignedLabel
}
