package store_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	departmentModel "github.com/hrapp/hr-management/internal/core/datamodel/department"
	employeeModel "github.com/hrapp/hr-management/internal/core/datamodel/employee"
	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/store"
)

func TestStore(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Store Suite")
}

var _ = Describe("Store", func() {
	var (
		backend     *storage.Memory
		entityStore *store.Store
		logger      *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		backend = storage.NewMemory()

		var err error
		entityStore, err = store.Open(backend, logger)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Open", func() {
		It("starts with empty collections when the backend has no slots", func() {
			Expect(entityStore.Accounts).To(BeEmpty())
			Expect(entityStore.Departments).To(BeEmpty())
			Expect(entityStore.Employees).To(BeEmpty())
			Expect(entityStore.Workflows).To(BeEmpty())
		})

		It("round-trips collections through the backend", func() {
			entityStore.Accounts = append(entityStore.Accounts, &accountModel.Account{
				ID:            1,
				Email:         "admin@example.com",
				Role:          accountModel.RoleAdmin,
				RefreshTokens: []string{"tok-1"},
			})
			Expect(entityStore.SaveAccounts()).To(Succeed())

			entityStore.Workflows = append(entityStore.Workflows, &workflowModel.Workflow{
				ID: 1, Type: workflowModel.TypeOnboarding, EmployeeID: "1",
			})
			Expect(entityStore.SaveWorkflows()).To(Succeed())

			reopened, err := store.Open(backend, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(reopened.Accounts).To(HaveLen(1))
			Expect(reopened.Accounts[0].Email).To(Equal("admin@example.com"))
			Expect(reopened.Accounts[0].HasRefreshToken("tok-1")).To(BeTrue())
			Expect(reopened.Workflows).To(HaveLen(1))
			Expect(reopened.Workflows[0].Type).To(Equal(workflowModel.TypeOnboarding))
		})

		It("fails on a corrupt slot", func() {
			Expect(backend.Save("accounts", []byte("not json"))).To(Succeed())
			_, err := store.Open(backend, logger)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("id assignment", func() {
		It("assigns max+1 and never reuses a freed id", func() {
			entityStore.Accounts = append(entityStore.Accounts,
				&accountModel.Account{ID: 1},
				&accountModel.Account{ID: 3},
			)
			Expect(entityStore.NextAccountID()).To(Equal(int64(4)))

			entityStore.RemoveAccount(3)
			Expect(entityStore.NextAccountID()).To(Equal(int64(2)))
		})

		It("renders employee ids as strings", func() {
			Expect(entityStore.NextEmployeeID()).To(Equal("1"))
			entityStore.Employees = append(entityStore.Employees, &employeeModel.Employee{ID: "7"})
			Expect(entityStore.NextEmployeeID()).To(Equal("8"))
		})
	})

	Describe("finders", func() {
		BeforeEach(func() {
			expires := time.Now().Add(time.Hour)
			entityStore.Accounts = append(entityStore.Accounts, &accountModel.Account{
				ID:                1,
				Email:             "admin@example.com",
				VerificationToken: "verify-1",
				ResetToken:        "reset-1",
				ResetTokenExpires: &expires,
				RefreshTokens:     []string{"refresh-1"},
			})
			entityStore.Departments = append(entityStore.Departments,
				&departmentModel.Department{ID: 1, Name: "Engineering"})
			entityStore.Employees = append(entityStore.Employees,
				&employeeModel.Employee{ID: "1", UserID: 1, DepartmentID: 1})
			entityStore.Workflows = append(entityStore.Workflows,
				&workflowModel.Workflow{ID: 1, EmployeeID: "1"},
				&workflowModel.Workflow{ID: 2, EmployeeID: "2"},
			)
		})

		It("finds accounts by email, refresh token and verification token", func() {
			Expect(entityStore.AccountByEmail("admin@example.com")).NotTo(BeNil())
			Expect(entityStore.AccountByEmail("nobody@example.com")).To(BeNil())
			Expect(entityStore.AccountByRefreshToken("refresh-1")).NotTo(BeNil())
			Expect(entityStore.AccountByRefreshToken("other")).To(BeNil())
			Expect(entityStore.AccountByVerificationToken("verify-1")).NotTo(BeNil())
		})

		It("never matches an empty verification token", func() {
			entityStore.Accounts[0].VerificationToken = ""
			Expect(entityStore.AccountByVerificationToken("")).To(BeNil())
		})

		It("honors reset token expiry", func() {
			now := time.Now()
			Expect(entityStore.AccountByResetToken("reset-1", now)).NotTo(BeNil())
			Expect(entityStore.AccountByResetToken("reset-1", now.Add(2*time.Hour))).To(BeNil())
			Expect(entityStore.AccountByResetToken("wrong", now)).To(BeNil())
		})

		It("filters workflows by employee id", func() {
			Expect(entityStore.WorkflowsByEmployeeID("1")).To(HaveLen(1))
			Expect(entityStore.WorkflowsByEmployeeID("3")).To(BeEmpty())
		})

		It("finds departments by name and employees by user id", func() {
			Expect(entityStore.DepartmentByName("Engineering")).NotTo(BeNil())
			Expect(entityStore.EmployeeByUserID(1)).NotTo(BeNil())
			Expect(entityStore.EmployeeByUserID(9)).To(BeNil())
		})
	})

	Describe("removal", func() {
		It("reports whether a record was actually removed", func() {
			entityStore.Departments = append(entityStore.Departments,
				&departmentModel.Department{ID: 1, Name: "Engineering"})

			Expect(entityStore.RemoveDepartment(1)).To(BeTrue())
			Expect(entityStore.RemoveDepartment(1)).To(BeFalse())
			Expect(entityStore.Departments).To(BeEmpty())
		})
	})
})
