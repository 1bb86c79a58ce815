package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"content-tracker-report/internal/models"
	"content-tracker-report/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	snapshots *services.SnapshotService
	workflow  *services.WorkflowService
	reports   *services.ReportService
	scheduler *services.SchedulerService
	pdf       *services.PDFService
	excel     *services.ExcelService
	hub       *Hub
}

// NewHandlers creates a new handlers instance. The scheduler may be nil when
// email is not configured.
func NewHandlers(
	snapshots *services.SnapshotService,
	workflow *services.WorkflowService,
	reports *services.ReportService,
	scheduler *services.SchedulerService,
	pdf *services.PDFService,
	excel *services.ExcelService,
	hub *Hub,
) *Handlers {
	return &Handlers{
		snapshots: snapshots,
		workflow:  workflow,
		reports:   reports,
		scheduler: scheduler,
		pdf:       pdf,
		excel:     excel,
		hub:       hub,
	}
}

// filterConfigFromQuery builds a FilterConfig from request query parameters
func filterConfigFromQuery(c *gin.Context) (models.FilterConfig, error) {
	period, err := models.ParseTimePeriod(c.Query("period"))
	if err != nil {
		return models.FilterConfig{}, err
	}

	cfg := models.FilterConfig{
		Month:    c.Query("month"),
		Period:   period,
		Search:   c.Query("search"),
		Employee: c.Query("employee"),
		Client:   c.Query("client"),
		Card:     models.CardFilter(c.Query("card")),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseTaskStatus(raw)
		if err != nil {
			return models.FilterConfig{}, err
		}
		cfg.Status = status
	}
	return cfg, nil
}

// GetDashboardHandler handles GET /api/dashboard
// Returns the filtered task list, client groups, and card counters.
func (h *Handlers) GetDashboardHandler(c *gin.Context) {
	cfg, err := filterConfigFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := h.snapshots.Snapshot()
	tasks := services.FilterTasks(snapshot.Tasks, snapshot.ActiveClients, cfg, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"tasks":           tasks,
		"groups":          services.GroupTasksByClient(tasks),
		"stats":           services.ComputeDashboardStats(tasks),
		"snapshotVersion": snapshot.Version,
	})
}

// GetCalendarHandler handles GET /api/calendar?month=YYYY-MM
func (h *Handlers) GetCalendarHandler(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}

	snapshot := h.snapshots.Snapshot()
	visible := services.FilterTasks(snapshot.Tasks, snapshot.ActiveClients, models.FilterConfig{}, time.Now())
	days, err := services.CalendarDays(visible, month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"month": month, "days": days})
}

// GetApprovalsHandler handles GET /api/approvals
// The pending-client-approval queue, disjoint from all dashboard views.
func (h *Handlers) GetApprovalsHandler(c *gin.Context) {
	snapshot := h.snapshots.Snapshot()
	tasks := services.PendingApprovalTasks(snapshot.Tasks, snapshot.ActiveClients, c.Query("month"))
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// GetEmployeesHandler handles GET /api/employees
// The social media working roster used to populate the employee filter.
func (h *Handlers) GetEmployeesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"employees": h.snapshots.SocialMediaEmployees()})
}

// GetPerformanceHandler handles GET /api/employees/performance?month=YYYY-MM
func (h *Handlers) GetPerformanceHandler(c *gin.Context) {
	ranks := h.reports.EmployeePerformance(c.Query("month"), time.Now())
	c.JSON(http.StatusOK, gin.H{"ranking": ranks})
}

// CreateTaskHandler handles POST /api/tasks
func (h *Handlers) CreateTaskHandler(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.workflow.CreateExtraTask(c.Request.Context(), req)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// ApproveTaskHandler handles POST /api/tasks/:taskId/approve
func (h *Handlers) ApproveTaskHandler(c *gin.Context) {
	taskID := c.Param("taskId")
	if err := h.workflow.ApproveTask(c.Request.Context(), taskID); err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "status": models.StatusApproved})
}

// RequestRevisionHandler handles POST /api/tasks/:taskId/revision
func (h *Handlers) RequestRevisionHandler(c *gin.Context) {
	taskID := c.Param("taskId")
	var req models.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.workflow.RequestRevision(c.Request.Context(), taskID, req.Message, req.RequestedBy); err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "status": models.StatusRevisionRequired})
}

// SaveRevisionDraftHandler handles PUT /api/tasks/:taskId/revision-draft
// Drafts are held in memory until the revision request is submitted.
func (h *Handlers) SaveRevisionDraftHandler(c *gin.Context) {
	taskID := c.Param("taskId")
	var req models.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.workflow.SetRevisionDraft(taskID, req.Message)
	c.JSON(http.StatusOK, gin.H{"taskId": taskID})
}

// GetRevisionDraftHandler handles GET /api/tasks/:taskId/revision-draft
func (h *Handlers) GetRevisionDraftHandler(c *gin.Context) {
	taskID := c.Param("taskId")
	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "message": h.workflow.RevisionDraft(taskID)})
}

// MarkPostedHandler handles POST /api/tasks/:taskId/posted
func (h *Handlers) MarkPostedHandler(c *gin.Context) {
	taskID := c.Param("taskId")
	var req models.MarkPostedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.AdsRun {
		err = h.workflow.MarkPostedWithAds(c.Request.Context(), taskID, req.AdType, req.AdCost)
	} else {
		err = h.workflow.MarkPosted(c.Request.Context(), taskID)
	}
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"taskId": taskID, "status": models.StatusPosted})
}

// ExportReportHandler handles GET /api/reports/export
// Streams a generated PDF or spreadsheet back as a download.
func (h *Handlers) ExportReportHandler(c *gin.Context) {
	var req models.ExportReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := filterConfigFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := models.ParseGroupingMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format, err := models.ParseOutputKind(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.GenerateReport(cfg, mode, time.Now())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	switch format {
	case models.OutputExcel:
		data, err := h.excel.GenerateReportExcel(report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("content-report-%s.xlsx", report.Month)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		data, err := h.pdf.GenerateReportPDF(report)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		filename := fmt.Sprintf("content-report-%s.pdf", report.Month)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}

// GetReportHandler handles GET /api/reports
// Returns the document model as JSON for screen rendering.
func (h *Handlers) GetReportHandler(c *gin.Context) {
	cfg, err := filterConfigFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := models.ParseGroupingMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reports.GenerateReport(cfg, mode, time.Now())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// SendReportEmailHandler handles POST /api/reports/send-email
func (h *Handlers) SendReportEmailHandler(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email is not configured"})
		return
	}

	var req models.SendReportEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.scheduler.SendReportForMonth(req.Month, req.Email); err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": true, "month": req.Month})
}

// SnapshotStreamHandler handles GET /ws, pushing snapshot-change events
func (h *Handlers) SnapshotStreamHandler(c *gin.Context) {
	h.hub.HandleConnection(c)
}

// respondWorkflowError maps the error taxonomy onto HTTP statuses
func respondWorkflowError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var emptyErr *models.EmptyResultError
	var writeErr *models.WriteFailure

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "field": validationErr.Field})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	case errors.As(err, &emptyErr):
		c.JSON(http.StatusNotFound, gin.H{"error": emptyErr.Error(), "empty": true})
	case errors.As(err, &writeErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": writeErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
