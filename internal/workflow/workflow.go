// Package workflow implements the request/approval records attached to
// employees. The reference API exposes these endpoints without
// authentication and with a deliberately permissive update contract; both
// behaviors are preserved here.
package workflow

import (
	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
)

// Response is the stored record itself: workflows carry no secrets and no
// expanded relations, so no narrowing projection is applied.
type Response = workflowModel.Workflow
