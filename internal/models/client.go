package models

import "strings"

// ClientStatus represents the lifecycle status of a client account
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientDisabled ClientStatus = "disabled"
)

// Client represents a client record from any of the three client collections.
// Different sources use different identifying fields, so both id and name
// variants are carried.
type Client struct {
	ID         string       `bson:"_id,omitempty" json:"id,omitempty"`
	ClientID   string       `bson:"clientId,omitempty" json:"clientId,omitempty"`
	ClientName string       `bson:"clientName,omitempty" json:"clientName,omitempty"`
	Name       string       `bson:"name,omitempty" json:"name,omitempty"`
	Status     ClientStatus `bson:"status,omitempty" json:"status,omitempty"`
	Deleted    bool         `bson:"deleted,omitempty" json:"deleted,omitempty"`
}

// IsActive reports whether the client should appear in downstream views.
// A client is active unless its status is inactive or disabled.
func (c Client) IsActive() bool {
	return c.Status != ClientInactive && c.Status != ClientDisabled
}

// DisplayName returns whichever name field the source populated
func (c Client) DisplayName() string {
	if c.ClientName != "" {
		return c.ClientName
	}
	return c.Name
}

// Employee represents an employee record from the employee collection
type Employee struct {
	ID           string `bson:"_id,omitempty" json:"id,omitempty"`
	EmployeeName string `bson:"employeeName,omitempty" json:"employeeName,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Department   string `bson:"department,omitempty" json:"department,omitempty"`
	Role         string `bson:"role,omitempty" json:"role,omitempty"`
	Status       string `bson:"status,omitempty" json:"status,omitempty"`
}

// IsSocialMediaMember reports whether the employee belongs to the social media
// team's working roster: active, in a social-media department (case and
// separator insensitive), and not in a leadership role.
func (e Employee) IsSocialMediaMember() bool {
	if !strings.EqualFold(e.Status, "active") {
		return false
	}
	dept := strings.ToLower(e.Department)
	dept = strings.NewReplacer("-", "", "_", "", " ", "").Replace(dept)
	if dept != "socialmedia" {
		return false
	}
	switch strings.ToLower(e.Role) {
	case "head", "manager", "department-head":
		return false
	}
	return true
}
