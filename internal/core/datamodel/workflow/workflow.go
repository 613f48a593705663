package workflow

import "time"

type Type string

const (
	TypeOnboarding         Type = "Onboarding"
	TypeDepartmentTransfer Type = "Department Transfer"
	TypeLeaveRequest       Type = "Leave Request"
	TypeOvertimeRequest    Type = "Overtime Request"
	TypeExpenseClaim       Type = "Expense Claim"
	TypeTrainingRequest    Type = "Training Request"
	TypeEquipmentRequest   Type = "Equipment Request"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusApproved   Status = "Approved"
	StatusRejected   Status = "Rejected"
	StatusCompleted  Status = "Completed"
)

// Workflow is the stored record. DateUpdated advances on every mutation.
type Workflow struct {
	ID              int64        `json:"id"`
	Type            Type         `json:"type"`
	Details         string       `json:"details"`
	Status          Status       `json:"status"`
	EmployeeID      string       `json:"employeeId"`
	DateCreated     time.Time    `json:"dateCreated"`
	DateUpdated     time.Time    `json:"dateUpdated"`
	Comments        []Comment    `json:"comments,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	ApproverID      string       `json:"approverId,omitempty"`
	ApproverName    string       `json:"approverName,omitempty"`
	ApprovalDate    string       `json:"approvalDate,omitempty"`
	RejectionReason string       `json:"rejectionReason,omitempty"`
}

type Comment struct {
	ID          string    `json:"id"`
	WorkflowID  string    `json:"workflowId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Comment     string    `json:"comment"`
	DateCreated time.Time `json:"dateCreated"`
}

type Attachment struct {
	ID         string `json:"id"`
	WorkflowID string `json:"workflowId"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	FileSize   int64  `json:"fileSize"`
	UploadDate string `json:"uploadDate"`
	UploadedBy string `json:"uploadedBy"`
}

func ValidTypes() []Type {
	return []Type{
		TypeOnboarding, TypeDepartmentTransfer, TypeLeaveRequest,
		TypeOvertimeRequest, TypeExpenseClaim, TypeTrainingRequest,
		TypeEquipmentRequest,
	}
}
