package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"content-tracker-report/internal/models"
	"content-tracker-report/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// approvedByLabel is recorded on approval transitions
const approvedByLabel = "Client"

// TaskWriter is the slice of the store the workflow engine writes through.
// All writes are fire-and-forget single-record updates; local views are never
// patched from the write result, only from the next snapshot refresh.
type TaskWriter interface {
	UpdateTask(ctx context.Context, taskID string, sets bson.M, incs bson.M) error
	InsertTask(ctx context.Context, task models.Task) error
}

// WorkflowService applies the allowed status transitions to tasks and
// computes the side-effect fields each transition sets. It also holds the
// per-task draft revision messages, cleared on a successful revision request.
type WorkflowService struct {
	store     TaskWriter
	snapshots *SnapshotService

	draftMutex sync.Mutex
	drafts     map[string]string
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(store TaskWriter, snapshots *SnapshotService) *WorkflowService {
	return &WorkflowService{
		store:     store,
		snapshots: snapshots,
		drafts:    make(map[string]string),
	}
}

// SetRevisionDraft stores the caller's in-progress revision message for a task
func (s *WorkflowService) SetRevisionDraft(taskID, message string) {
	s.draftMutex.Lock()
	defer s.draftMutex.Unlock()
	s.drafts[taskID] = message
}

// RevisionDraft returns the stored draft message for a task, if any
func (s *WorkflowService) RevisionDraft(taskID string) string {
	s.draftMutex.Lock()
	defer s.draftMutex.Unlock()
	return s.drafts[taskID]
}

func (s *WorkflowService) clearRevisionDraft(taskID string) {
	s.draftMutex.Lock()
	defer s.draftMutex.Unlock()
	delete(s.drafts, taskID)
}

// ApproveTask moves a pending task to approved on the client's behalf
func (s *WorkflowService) ApproveTask(ctx context.Context, taskID string) error {
	if _, ok := s.snapshots.GetTask(taskID); !ok {
		return &models.NotFoundError{TaskID: taskID}
	}

	now := utils.FormatTimestamp(time.Now())
	sets := bson.M{
		"status":         models.StatusApproved,
		"clientApproved": true,
		"approvedAt":     now,
		"approvedBy":     approvedByLabel,
		"lastUpdated":    now,
	}
	if err := s.store.UpdateTask(ctx, taskID, sets, nil); err != nil {
		return wrapWrite(taskID, err)
	}
	return nil
}

// RequestRevision rejects a pending task back to its owning department. The
// revision message is required; revisionCount increments atomically so it
// never decreases regardless of write interleaving.
func (s *WorkflowService) RequestRevision(ctx context.Context, taskID, message, requestedBy string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.NewValidationError("message", "a revision message is required")
	}

	task, ok := s.snapshots.GetTask(taskID)
	if !ok {
		return &models.NotFoundError{TaskID: taskID}
	}

	now := utils.FormatTimestamp(time.Now())
	sets := bson.M{
		"status":              models.StatusRevisionRequired,
		"department":          inferOriginalDepartment(task),
		"clientApproved":      false,
		"revisionMessage":     message,
		"revisionRequestedAt": now,
		"lastRevisionAt":      now,
		"lastUpdated":         now,
	}
	if requestedBy != "" {
		sets["revisionRequestedBy"] = requestedBy
	}
	incs := bson.M{"revisionCount": 1}

	if err := s.store.UpdateTask(ctx, taskID, sets, incs); err != nil {
		return wrapWrite(taskID, err)
	}
	s.clearRevisionDraft(taskID)
	return nil
}

// MarkPosted moves an approved task to posted without ad spend
func (s *WorkflowService) MarkPosted(ctx context.Context, taskID string) error {
	if _, ok := s.snapshots.GetTask(taskID); !ok {
		return &models.NotFoundError{TaskID: taskID}
	}

	now := utils.FormatTimestamp(time.Now())
	sets := bson.M{
		"status":      models.StatusPosted,
		"postedAt":    now,
		"adsRun":      false,
		"lastUpdated": now,
	}
	if err := s.store.UpdateTask(ctx, taskID, sets, nil); err != nil {
		return wrapWrite(taskID, err)
	}
	return nil
}

// MarkPostedWithAds moves an approved task to posted with a paid promotion.
// The ad type must be set and the cost must parse as a number greater than 0.
func (s *WorkflowService) MarkPostedWithAds(ctx context.Context, taskID, adType, adCost string) error {
	if strings.TrimSpace(adType) == "" {
		return models.NewValidationError("adType", "an ad type is required")
	}
	parsedType, err := models.ParseAdType(adType)
	if err != nil {
		return models.NewValidationError("adType", err.Error())
	}
	cost, err := strconv.ParseFloat(strings.TrimSpace(adCost), 64)
	if err != nil || cost <= 0 {
		return models.NewValidationError("adCost", "ad cost must be a number greater than 0")
	}

	if _, ok := s.snapshots.GetTask(taskID); !ok {
		return &models.NotFoundError{TaskID: taskID}
	}

	now := utils.FormatTimestamp(time.Now())
	sets := bson.M{
		"status":      models.StatusPosted,
		"postedAt":    now,
		"adsRun":      true,
		"adType":      parsedType,
		"adCost":      cost,
		"lastUpdated": now,
	}
	if err := s.store.UpdateTask(ctx, taskID, sets, nil); err != nil {
		return wrapWrite(taskID, err)
	}
	return nil
}

// CreateExtraTask creates a manually-added task assigned to a department
func (s *WorkflowService) CreateExtraTask(ctx context.Context, req models.CreateTaskRequest) (models.Task, error) {
	if strings.TrimSpace(req.ClientName) == "" {
		return models.Task{}, models.NewValidationError("clientName", "a client name is required")
	}
	if strings.TrimSpace(req.TaskName) == "" {
		return models.Task{}, models.NewValidationError("taskName", "an idea or task name is required")
	}
	if strings.TrimSpace(req.Department) == "" {
		return models.Task{}, models.NewValidationError("department", "a department is required")
	}
	department, err := models.ParseDepartment(req.Department)
	if err != nil {
		return models.Task{}, models.NewValidationError("department", err.Error())
	}

	now := utils.FormatTimestamp(time.Now())
	deadline := req.PostDate
	if deadline == "" {
		deadline = utils.FormatDate(time.Now())
	}

	task := models.Task{
		ID:                 utils.GenerateUUID(),
		ClientName:         strings.TrimSpace(req.ClientName),
		ClientID:           req.ClientID,
		TaskName:           strings.TrimSpace(req.TaskName),
		TaskType:           req.TaskType,
		ProjectName:        req.ProjectName,
		Department:         department,
		OriginalDepartment: department,
		Status:             models.StatusAssignedToDepartment,
		AssignedTo:         models.NotAssignedLabel,
		SubmittedBy:        req.SubmittedBy,
		PostDate:           req.PostDate,
		Deadline:           deadline,
		CreatedAt:          now,
		LastUpdated:        now,
	}

	if err := s.store.InsertTask(ctx, task); err != nil {
		return models.Task{}, wrapWrite(task.ID, err)
	}
	return task, nil
}

// inferOriginalDepartment resolves the department a rejected task returns to.
// originalDepartment wins; when the current department is generic
// (social-media) the task name is used as a heuristic.
func inferOriginalDepartment(task models.Task) models.Department {
	if task.OriginalDepartment != "" {
		return task.OriginalDepartment
	}
	if task.Department != "" && task.Department != models.DepartmentSocialMedia {
		return task.Department
	}
	name := strings.ToLower(task.TaskName + " " + task.TaskType)
	switch {
	case strings.Contains(name, "video") || strings.Contains(name, "reel"):
		return models.DepartmentVideo
	case strings.Contains(name, "design") || strings.Contains(name, "graphic") || strings.Contains(name, "poster"):
		return models.DepartmentGraphics
	}
	return models.DepartmentSocialMedia
}

// wrapWrite converts store errors into the workflow taxonomy. NotFound from
// the store passes through unchanged.
func wrapWrite(taskID string, err error) error {
	if _, ok := err.(*models.NotFoundError); ok {
		return err
	}
	return &models.WriteFailure{TaskID: taskID, Err: err}
}
