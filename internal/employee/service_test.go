package employee_test

import (
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/hrapp/hr-management/internal"
	"github.com/hrapp/hr-management/internal/auth"
	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	departmentModel "github.com/hrapp/hr-management/internal/core/datamodel/department"
	"github.com/hrapp/hr-management/internal/employee"
	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/store"
)

func TestEmployeeService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Service Suite")
}

var _ = Describe("Employee Service", func() {
	var (
		entityStore *store.Store
		service     *employee.Service
		adminHdr    http.Header
		userHdr     http.Header
	)

	newEmployee := func() employee.CreateDTO {
		return employee.CreateDTO{
			EmployeeID:   "EMP001",
			Position:     "Engineer",
			UserID:       2,
			DepartmentID: 1,
			HireDate:     "2026-01-15",
		}
	}

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		var err error
		entityStore, err = store.Open(storage.NewMemory(), logger)
		Expect(err).NotTo(HaveOccurred())

		admin := &accountModel.Account{ID: 1, Email: "admin@example.com", Role: accountModel.RoleAdmin, IsActive: true, IsVerified: true}
		user := &accountModel.Account{ID: 2, Email: "user@example.com", FirstName: "Eve", Role: accountModel.RoleUser, IsActive: true, IsVerified: true}
		entityStore.Accounts = append(entityStore.Accounts, admin, user)
		entityStore.Departments = append(entityStore.Departments,
			&departmentModel.Department{ID: 1, Name: "Engineering"},
			&departmentModel.Department{ID: 2, Name: "HR"},
		)

		tokens := auth.NewTokenService(entityStore, "test-secret", 15*time.Minute, 7*24*time.Hour, logger)
		service = employee.NewService(entityStore, tokens, logger)

		headerFor := func(acct *accountModel.Account) http.Header {
			token, err := tokens.GenerateAccessToken(acct)
			Expect(err).NotTo(HaveOccurred())
			h := http.Header{}
			h.Set("Authorization", "Bearer "+token)
			return h
		}
		adminHdr = headerFor(admin)
		userHdr = headerFor(user)
	})

	Describe("Create", func() {
		It("creates an active employee with string ids assigned sequentially", func() {
			resp, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.ID).To(Equal("1"))
			Expect(resp.IsActive).To(BeTrue())
		})

		It("expands the account and department relations in the projection", func() {
			resp, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Account).NotTo(BeNil())
			Expect(resp.Account.FirstName).To(Equal("Eve"))
			Expect(resp.Department).NotTo(BeNil())
			Expect(resp.Department.Name).To(Equal("Engineering"))
		})

		It("rejects a non-admin caller", func() {
			_, err := service.Create(userHdr, newEmployee())
			Expect(err).To(Equal(apperrors.ErrUnauthorized))
		})

		It("rejects an unknown user id", func() {
			dto := newEmployee()
			dto.UserID = 99
			_, err := service.Create(adminHdr, dto)
			Expect(err).To(Equal(apperrors.ErrUserNotFound))
		})

		It("rejects a second employee record for the same user", func() {
			_, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())

			dto := newEmployee()
			dto.EmployeeID = "EMP002"
			_, err = service.Create(adminHdr, dto)
			Expect(err).To(Equal(apperrors.ErrEmployeeExists))
		})

		It("rejects an unknown department as a validation failure", func() {
			dto := newEmployee()
			dto.DepartmentID = 99
			_, err := service.Create(adminHdr, dto)
			Expect(err).To(Equal(apperrors.ErrInvalidDepartment))

			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GetByID and List", func() {
		BeforeEach(func() {
			_, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists employees for any authenticated caller", func() {
			list, err := service.List(userHdr)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})

		It("projects a deleted department as null rather than failing", func() {
			entityStore.RemoveDepartment(1)

			got, err := service.GetByID(userHdr, "1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Department).To(BeNil())
			Expect(got.DepartmentID).To(Equal(int64(1)))
		})

		It("returns not found for a missing id", func() {
			_, err := service.GetByID(userHdr, "99")
			Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			_, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())
		})

		It("merges only the supplied fields for an admin", func() {
			position := "Senior Engineer"
			updated, err := service.Update(adminHdr, "1", employee.UpdateDTO{Position: &position})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Position).To(Equal("Senior Engineer"))
			Expect(updated.EmployeeID).To(Equal("EMP001"))
		})

		It("rejects a non-admin caller", func() {
			position := "CTO"
			_, err := service.Update(userHdr, "1", employee.UpdateDTO{Position: &position})
			Expect(err).To(Equal(apperrors.ErrUnauthorized))
		})
	})

	Describe("Transfer", func() {
		BeforeEach(func() {
			_, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())
		})

		It("moves the employee to an existing department", func() {
			moved, err := service.Transfer(adminHdr, "1", employee.TransferDTO{DepartmentID: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(moved.DepartmentID).To(Equal(int64(2)))
			Expect(moved.Department.Name).To(Equal("HR"))
		})

		It("rejects an unknown target department", func() {
			_, err := service.Transfer(adminHdr, "1", employee.TransferDTO{DepartmentID: 99})
			Expect(err).To(Equal(apperrors.ErrInvalidDepartment))
		})

		It("rejects a non-admin caller", func() {
			_, err := service.Transfer(userHdr, "1", employee.TransferDTO{DepartmentID: 2})
			Expect(err).To(Equal(apperrors.ErrUnauthorized))
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			_, err := service.Create(adminHdr, newEmployee())
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes the record for an admin", func() {
			Expect(service.Delete(adminHdr, "1")).To(Succeed())
			Expect(entityStore.Employees).To(BeEmpty())
		})

		It("returns not found for a missing id", func() {
			err := service.Delete(adminHdr, "99")
			Expect(err).To(Equal(apperrors.ErrEmployeeNotFound))
		})
	})
})
