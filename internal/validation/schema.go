package validation

import (
	"encoding/json"
	"fmt"

	"content-tracker-report/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// TaskValidator validates feed task documents against the task JSON schema
// before they enter a snapshot. Unknown status, department, or ad-type values
// are rejected here rather than falling through to default branches downstream.
type TaskValidator struct {
	schema *gojsonschema.Schema
}

// NewTaskValidator loads the task schema from a file
func NewTaskValidator(schemaPath string) (*TaskValidator, error) {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to load task schema: %w", err)
	}
	return &TaskValidator{schema: schema}, nil
}

// NewTaskValidatorFromBytes builds a validator from in-memory schema bytes
func NewTaskValidatorFromBytes(schemaData []byte) (*TaskValidator, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	schema, err := gojsonschema.NewSchema(schemaLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to load task schema: %w", err)
	}
	return &TaskValidator{schema: schema}, nil
}

// ParseTask validates a raw feed document and unmarshals it into a Task.
// bson.M satisfies the map type directly.
func (v *TaskValidator) ParseTask(doc map[string]interface{}) (models.Task, error) {
	if id, ok := doc["_id"]; ok {
		doc["id"] = fmt.Sprintf("%v", id)
		delete(doc, "_id")
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to marshal task document: %w", err)
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to validate task document: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return models.Task{}, fmt.Errorf("task document invalid: %v", errs)
	}

	var task models.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to parse task document: %w", err)
	}

	// The schema constrains the status enum, but legacy documents may carry
	// department strings the schema leaves open; re-check the closed types.
	if _, err := models.ParseTaskStatus(string(task.Status)); err != nil {
		return models.Task{}, err
	}
	if task.Department != "" {
		if _, err := models.ParseDepartment(string(task.Department)); err != nil {
			return models.Task{}, err
		}
	}
	if task.AdType != "" {
		if _, err := models.ParseAdType(string(task.AdType)); err != nil {
			return models.Task{}, err
		}
	}
	return task, nil
}
