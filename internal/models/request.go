package models

// CreateTaskRequest represents the "add extra task" action
type CreateTaskRequest struct {
	ClientName  string `json:"clientName"`
	ClientID    string `json:"clientId"`
	TaskName    string `json:"taskName"` // the idea/description text
	TaskType    string `json:"taskType"`
	ProjectName string `json:"projectName"`
	Department  string `json:"department"`
	PostDate    string `json:"postDate"` // YYYY-MM-DD, optional
	SubmittedBy string `json:"submittedBy"`
}

// RevisionRequest represents a client rejection with a revision message
type RevisionRequest struct {
	Message     string `json:"message"`
	RequestedBy string `json:"requestedBy"`
}

// MarkPostedRequest represents the "mark posted" action, with or without ad spend
type MarkPostedRequest struct {
	AdsRun bool   `json:"adsRun"`
	AdType string `json:"adType"`
	AdCost string `json:"adCost"` // raw text from the caller, parsed server-side
}

// ExportReportRequest captures the query surface of a report export
type ExportReportRequest struct {
	Month    string `form:"month"`    // YYYY-MM
	Period   string `form:"period"`   // day | week | month
	Employee string `form:"employee"` // exact employee name
	Client   string `form:"client"`   // exact client name
	Status   string `form:"status"`
	Search   string `form:"search"`
	Mode     string `form:"mode"`   // client | employee
	Format   string `form:"format"` // pdf | excel
}

// SendReportEmailRequest represents a manual report email trigger
type SendReportEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Month string `json:"month" binding:"required"` // YYYY-MM
	Mode  string `json:"mode"`
}
