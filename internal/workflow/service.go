package workflow

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	errors "github.com/hrapp/hr-management/internal"
	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
	"github.com/hrapp/hr-management/internal/store"
)

type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(s *store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  s,
		logger: logger,
	}
}

// Create stamps identity and timestamps onto the caller-supplied record.
// An empty status defaults to Pending.
func (s *Service) Create(draft workflowModel.Workflow) (*Response, error) {
	if !isValidType(draft.Type) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("Workflow type %q is not supported", draft.Type), errors.ErrCodeValidationFailed)
	}

	now := time.Now()
	draft.ID = s.store.NextWorkflowID()
	draft.DateCreated = now
	draft.DateUpdated = now
	if draft.Status == "" {
		draft.Status = workflowModel.StatusPending
	}

	wf := &draft
	s.store.Workflows = append(s.store.Workflows, wf)
	if err := s.store.SaveWorkflows(); err != nil {
		return nil, errors.NewInternalError("failed to persist workflows", err)
	}

	s.logger.Info("workflow created", "workflow_id", wf.ID, "type", wf.Type)
	return wf, nil
}

func (s *Service) List() []*Response {
	if s.store.Workflows == nil {
		return []*Response{}
	}
	return s.store.Workflows
}

func (s *Service) GetByID(id int64) (*Response, error) {
	wf := s.store.WorkflowByID(id)
	if wf == nil {
		return nil, errors.ErrWorkflowNotFound
	}
	return wf, nil
}

func (s *Service) GetByEmployeeID(employeeID string) []*Response {
	out := s.store.WorkflowsByEmployeeID(employeeID)
	if out == nil {
		return []*Response{}
	}
	return out
}

// Update shallow-merges the caller-supplied JSON onto the stored record —
// any field the caller names overwrites, none are whitelisted — then stamps
// DateUpdated. Identity and creation time survive the merge.
func (s *Service) Update(id int64, patch []byte) (*Response, error) {
	wf := s.store.WorkflowByID(id)
	if wf == nil {
		return nil, errors.ErrWorkflowNotFound
	}

	merged, err := mergeRecord(wf, patch)
	if err != nil {
		return nil, err
	}
	merged.ID = wf.ID
	merged.DateCreated = wf.DateCreated
	merged.DateUpdated = time.Now()
	*wf = *merged

	if err := s.store.SaveWorkflows(); err != nil {
		return nil, errors.NewInternalError("failed to persist workflows", err)
	}

	s.logger.Info("workflow updated", "workflow_id", id, "status", wf.Status)
	return wf, nil
}

func mergeRecord(current *workflowModel.Workflow, patch []byte) (*workflowModel.Workflow, error) {
	base, err := json.Marshal(current)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode workflow", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, errors.NewInternalError("failed to decode workflow", err)
	}

	var patchFields map[string]json.RawMessage
	if len(patch) == 0 {
		patch = []byte("{}")
	}
	if err := json.Unmarshal(patch, &patchFields); err != nil {
		return nil, errors.NewValidationError("Invalid request body", errors.ErrCodeValidationFailed).WithCause(err)
	}
	for name, value := range patchFields {
		fields[name] = value
	}

	combined, err := json.Marshal(fields)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode workflow", err)
	}

	var merged workflowModel.Workflow
	if err := json.Unmarshal(combined, &merged); err != nil {
		return nil, errors.NewValidationError("Invalid request body", errors.ErrCodeValidationFailed).WithCause(err)
	}
	return &merged, nil
}

func (s *Service) Delete(id int64) error {
	if !s.store.RemoveWorkflow(id) {
		return errors.ErrWorkflowNotFound
	}
	if err := s.store.SaveWorkflows(); err != nil {
		return errors.NewInternalError("failed to persist workflows", err)
	}
	s.logger.Info("workflow deleted", "workflow_id", id)
	return nil
}

func isValidType(t workflowModel.Type) bool {
	for _, known := range workflowModel.ValidTypes() {
		if t == known {
			return true
		}
	}
	return false
}
