package workflow_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/hrapp/hr-management/internal"
	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/store"
	"github.com/hrapp/hr-management/internal/workflow"
)

func TestWorkflowService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Workflow Service Suite")
}

var _ = Describe("Workflow Service", func() {
	var (
		entityStore *store.Store
		service     *workflow.Service
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		entityStore, err = store.Open(storage.NewMemory(), logger)
		Expect(err).NotTo(HaveOccurred())

		service = workflow.NewService(entityStore, logger)
	})

	Describe("Create", func() {
		It("stamps identity, timestamps and the default status", func() {
			created, err := service.Create(workflowModel.Workflow{
				Type:       workflowModel.TypeOnboarding,
				Details:    "Set up workstation",
				EmployeeID: "1",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.Status).To(Equal(workflowModel.StatusPending))
			Expect(created.DateCreated).NotTo(BeZero())
			Expect(created.DateUpdated).To(Equal(created.DateCreated))
		})

		It("keeps a caller-supplied status", func() {
			created, err := service.Create(workflowModel.Workflow{
				Type:       workflowModel.TypeLeaveRequest,
				EmployeeID: "1",
				Status:     workflowModel.StatusInProgress,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Status).To(Equal(workflowModel.StatusInProgress))
		})

		It("rejects a type outside the known catalogue", func() {
			_, err := service.Create(workflowModel.Workflow{
				Type:       workflowModel.Type("Sabbatical"),
				EmployeeID: "1",
			})
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeValidationFailed))
			Expect(service.List()).To(BeEmpty())
		})

		It("assigns sequential ids", func() {
			first, err := service.Create(workflowModel.Workflow{Type: workflowModel.TypeOnboarding, EmployeeID: "1"})
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Create(workflowModel.Workflow{Type: workflowModel.TypeLeaveRequest, EmployeeID: "1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID + 1))
		})
	})

	Describe("List and GetByEmployeeID", func() {
		It("returns an empty slice rather than nil when no workflows exist", func() {
			Expect(service.List()).To(BeEmpty())
			Expect(service.List()).NotTo(BeNil())
			Expect(service.GetByEmployeeID("1")).NotTo(BeNil())
		})

		It("filters by employee id", func() {
			_, err := service.Create(workflowModel.Workflow{Type: workflowModel.TypeOnboarding, EmployeeID: "1"})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(workflowModel.Workflow{Type: workflowModel.TypeLeaveRequest, EmployeeID: "2"})
			Expect(err).NotTo(HaveOccurred())

			mine := service.GetByEmployeeID("2")
			Expect(mine).To(HaveLen(1))
			Expect(mine[0].Type).To(Equal(workflowModel.TypeLeaveRequest))
		})
	})

	Describe("GetByID", func() {
		It("returns not found for a missing id", func() {
			_, err := service.GetByID(99)
			Expect(err).To(Equal(apperrors.ErrWorkflowNotFound))
		})
	})

	Describe("Update", func() {
		var created *workflow.Response

		BeforeEach(func() {
			var err error
			created, err = service.Create(workflowModel.Workflow{
				Type:       workflowModel.TypeOnboarding,
				Details:    "Set up workstation",
				EmployeeID: "1",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("shallow-merges the supplied fields onto the record", func() {
			updated, err := service.Update(created.ID, []byte(`{"status":"Approved","approverName":"Ada Admin"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(workflowModel.StatusApproved))
			Expect(updated.ApproverName).To(Equal("Ada Admin"))
			Expect(updated.Details).To(Equal("Set up workstation"))
		})

		It("preserves identity and creation time even when the patch names them", func() {
			updated, err := service.Update(created.ID, []byte(`{"id":999,"dateCreated":"2001-01-01T00:00:00Z"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.ID).To(Equal(created.ID))
			Expect(updated.DateCreated).To(Equal(created.DateCreated))
		})

		It("advances DateUpdated on every merge", func() {
			before := created.DateUpdated
			updated, err := service.Update(created.ID, []byte(`{"status":"In Progress"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.DateUpdated.After(before) || updated.DateUpdated.Equal(before)).To(BeTrue())
			Expect(updated.DateUpdated).NotTo(BeZero())
		})

		It("treats an empty body as a no-op merge", func() {
			updated, err := service.Update(created.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Details).To(Equal("Set up workstation"))
		})

		It("rejects a malformed body", func() {
			_, err := service.Update(created.ID, []byte(`{"status":`))
			Expect(err).To(HaveOccurred())
		})

		It("returns not found for a missing id", func() {
			_, err := service.Update(99, []byte(`{}`))
			Expect(err).To(Equal(apperrors.ErrWorkflowNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the record", func() {
			created, err := service.Create(workflowModel.Workflow{Type: workflowModel.TypeOnboarding, EmployeeID: "1"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(created.ID)).To(Succeed())
			Expect(entityStore.Workflows).To(BeEmpty())
		})

		It("returns not found for a missing id", func() {
			Expect(service.Delete(99)).To(Equal(apperrors.ErrWorkflowNotFound))
		})
	})
})
