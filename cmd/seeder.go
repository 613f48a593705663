package cmd

import (
	"fmt"
	"log"
	"time"

	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	departmentModel "github.com/hrapp/hr-management/internal/core/datamodel/department"
	employeeModel "github.com/hrapp/hr-management/internal/core/datamodel/employee"
	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
	"github.com/hrapp/hr-management/internal/storage"
	"github.com/hrapp/hr-management/internal/store"
	"github.com/hrapp/hr-management/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the backing slots with sample data",
	Long:  `Seed the backing slots with sample accounts, departments, employees and workflows for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Logging.Level, cfg.Logging.Format)
		lg := logger.LoggerWrapper()

		backend, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Source)
		if err != nil {
			log.Fatalf("failed to open storage: %v", err)
		}

		entityStore, err := store.Open(backend, lg)
		if err != nil {
			log.Fatalf("failed to open store: %v", err)
		}

		entityStore.Lock()
		defer entityStore.Unlock()

		if clearData {
			entityStore.Accounts = nil
			entityStore.Departments = nil
			entityStore.Employees = nil
			entityStore.Workflows = nil
			fmt.Println("cleared existing data")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		now := time.Now()

		if entityStore.AccountByEmail("admin@example.com") == nil {
			entityStore.Accounts = append(entityStore.Accounts, &accountModel.Account{
				ID:            entityStore.NextAccountID(),
				Title:         "Mr",
				FirstName:     "Site",
				LastName:      "Admin",
				Email:         "admin@example.com",
				PasswordHash:  string(hash),
				Role:          accountModel.RoleAdmin,
				IsVerified:    true,
				IsActive:      true,
				DateCreated:   now,
				RefreshTokens: []string{},
			})
			fmt.Println("seeded admin account: admin@example.com")
		}

		if entityStore.AccountByEmail("user@example.com") == nil {
			entityStore.Accounts = append(entityStore.Accounts, &accountModel.Account{
				ID:            entityStore.NextAccountID(),
				Title:         "Ms",
				FirstName:     "Regular",
				LastName:      "User",
				Email:         "user@example.com",
				PasswordHash:  string(hash),
				Role:          accountModel.RoleUser,
				IsVerified:    true,
				IsActive:      true,
				DateCreated:   now,
				RefreshTokens: []string{},
			})
			fmt.Println("seeded user account: user@example.com")
		}
		if err := entityStore.SaveAccounts(); err != nil {
			log.Fatalf("failed to save accounts: %v", err)
		}

		for _, name := range []struct{ Name, Desc string }{
			{"Engineering", "Product development"},
			{"Human Resources", "People operations"},
		} {
			if entityStore.DepartmentByName(name.Name) != nil {
				continue
			}
			entityStore.Departments = append(entityStore.Departments, &departmentModel.Department{
				ID:          entityStore.NextDepartmentID(),
				Name:        name.Name,
				Description: name.Desc,
			})
			fmt.Println("seeded department:", name.Name)
		}
		if err := entityStore.SaveDepartments(); err != nil {
			log.Fatalf("failed to save departments: %v", err)
		}

		if entityStore.EmployeeByUserID(2) == nil {
			entityStore.Employees = append(entityStore.Employees, &employeeModel.Employee{
				ID:           entityStore.NextEmployeeID(),
				EmployeeID:   "EMP001",
				Position:     "Software Engineer",
				UserID:       2,
				DepartmentID: 1,
				HireDate:     now.Format("2006-01-02"),
				IsActive:     true,
			})
			fmt.Println("seeded employee: EMP001")
			if err := entityStore.SaveEmployees(); err != nil {
				log.Fatalf("failed to save employees: %v", err)
			}
		}

		if len(entityStore.Workflows) == 0 {
			entityStore.Workflows = append(entityStore.Workflows, &workflowModel.Workflow{
				ID:          entityStore.NextWorkflowID(),
				Type:        workflowModel.TypeOnboarding,
				Details:     "Set up workstation and accounts",
				Status:      workflowModel.StatusPending,
				EmployeeID:  "1",
				DateCreated: now,
				DateUpdated: now,
			})
			fmt.Println("seeded workflow: Onboarding")
			if err := entityStore.SaveWorkflows(); err != nil {
				log.Fatalf("failed to save workflows: %v", err)
			}
		}

		fmt.Println("seeding complete")
	},
}
