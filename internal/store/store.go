// Package store owns the four in-memory collections behind the simulated
// backend. Collections load once from durable storage at open and are
// rewritten in full after every mutation. Mutations are serialized by the
// dispatcher through Lock/Unlock; the store itself performs no locking on
// reads or writes.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	accountModel "github.com/hrapp/hr-management/internal/core/datamodel/account"
	departmentModel "github.com/hrapp/hr-management/internal/core/datamodel/department"
	employeeModel "github.com/hrapp/hr-management/internal/core/datamodel/employee"
	workflowModel "github.com/hrapp/hr-management/internal/core/datamodel/workflow"
	"github.com/hrapp/hr-management/internal/storage"
)

const (
	accountsSlot    = "accounts"
	departmentsSlot = "departments"
	employeesSlot   = "employees"
	workflowsSlot   = "workflows"
)

type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	logger  *slog.Logger

	Accounts    []*accountModel.Account
	Departments []*departmentModel.Department
	Employees   []*employeeModel.Employee
	Workflows   []*workflowModel.Workflow
}

// Open loads all four collections from the backend. Missing slots start as
// empty collections.
func Open(backend storage.Backend, logger *slog.Logger) (*Store, error) {
	s := &Store{backend: backend, logger: logger}

	if err := loadSlot(backend, accountsSlot, &s.Accounts); err != nil {
		return nil, err
	}
	if err := loadSlot(backend, departmentsSlot, &s.Departments); err != nil {
		return nil, err
	}
	if err := loadSlot(backend, employeesSlot, &s.Employees); err != nil {
		return nil, err
	}
	if err := loadSlot(backend, workflowsSlot, &s.Workflows); err != nil {
		return nil, err
	}

	logger.Info("entity store loaded",
		"accounts", len(s.Accounts),
		"departments", len(s.Departments),
		"employees", len(s.Employees),
		"workflows", len(s.Workflows))
	return s, nil
}

func loadSlot[T any](backend storage.Backend, key string, into *[]*T) error {
	data, err := backend.Load(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if data == nil {
		*into = nil
		return nil
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) flush(key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Save(key, data); err != nil {
		return err
	}
	s.logger.Debug("collection persisted", "slot", key)
	return nil
}

// Lock serializes request handling; one request runs to completion before the
// next handler body starts.
func (s *Store) Lock() { s.mu.Lock() }

func (s *Store) Unlock() { s.mu.Unlock() }

// ---- accounts ----

func (s *Store) SaveAccounts() error {
	return s.flush(accountsSlot, s.Accounts)
}

func (s *Store) NextAccountID() int64 {
	var max int64
	for _, a := range s.Accounts {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

func (s *Store) AccountByID(id int64) *accountModel.Account {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Store) AccountByEmail(email string) *accountModel.Account {
	for _, a := range s.Accounts {
		if a.Email == email {
			return a
		}
	}
	return nil
}

func (s *Store) AccountByRefreshToken(token string) *accountModel.Account {
	for _, a := range s.Accounts {
		if a.HasRefreshToken(token) {
			return a
		}
	}
	return nil
}

func (s *Store) AccountByVerificationToken(token string) *accountModel.Account {
	if token == "" {
		return nil
	}
	for _, a := range s.Accounts {
		if a.VerificationToken == token {
			return a
		}
	}
	return nil
}

func (s *Store) AccountByResetToken(token string, now time.Time) *accountModel.Account {
	for _, a := range s.Accounts {
		if a.HasValidResetToken(token, now) {
			return a
		}
	}
	return nil
}

func (s *Store) RemoveAccount(id int64) bool {
	kept := s.Accounts[:0]
	removed := false
	for _, a := range s.Accounts {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.Accounts = kept
	return removed
}

// ---- departments ----

func (s *Store) SaveDepartments() error {
	return s.flush(departmentsSlot, s.Departments)
}

func (s *Store) NextDepartmentID() int64 {
	var max int64
	for _, d := range s.Departments {
		if d.ID > max {
			max = d.ID
		}
	}
	return max + 1
}

func (s *Store) DepartmentByID(id int64) *departmentModel.Department {
	for _, d := range s.Departments {
		if d.ID == id {
			return d
		}
	}
	return nil
}

func (s *Store) DepartmentByName(name string) *departmentModel.Department {
	for _, d := range s.Departments {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func (s *Store) RemoveDepartment(id int64) bool {
	kept := s.Departments[:0]
	removed := false
	for _, d := range s.Departments {
		if d.ID == id {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	s.Departments = kept
	return removed
}

// ---- employees ----

func (s *Store) SaveEmployees() error {
	return s.flush(employeesSlot, s.Employees)
}

// NextEmployeeID returns max(existing)+1 rendered as a string; employee ids
// are string-typed in the external contract.
func (s *Store) NextEmployeeID() string {
	var max int64
	for _, e := range s.Employees {
		if n, err := strconv.ParseInt(e.ID, 10, 64); err == nil && n > max {
			max = n
		}
	}
	return strconv.FormatInt(max+1, 10)
}

func (s *Store) EmployeeByID(id string) *employeeModel.Employee {
	for _, e := range s.Employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *Store) EmployeeByUserID(userID int64) *employeeModel.Employee {
	for _, e := range s.Employees {
		if e.UserID == userID {
			return e
		}
	}
	return nil
}

func (s *Store) RemoveEmployee(id string) bool {
	kept := s.Employees[:0]
	removed := false
	for _, e := range s.Employees {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	s.Employees = kept
	return removed
}

// ---- workflows ----

func (s *Store) SaveWorkflows() error {
	return s.flush(workflowsSlot, s.Workflows)
}

func (s *Store) NextWorkflowID() int64 {
	var max int64
	for _, w := range s.Workflows {
		if w.ID > max {
			max = w.ID
		}
	}
	return max + 1
}

func (s *Store) WorkflowByID(id int64) *workflowModel.Workflow {
	for _, w := range s.Workflows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *Store) WorkflowsByEmployeeID(employeeID string) []*workflowModel.Workflow {
	var out []*workflowModel.Workflow
	for _, w := range s.Workflows {
		if w.EmployeeID == employeeID {
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) RemoveWorkflow(id int64) bool {
	kept := s.Workflows[:0]
	removed := false
	for _, w := range s.Workflows {
		if w.ID == id {
			removed = true
			continue
		}
		kept = append(kept, w)
	}
	s.Workflows = kept
	return removed
}
