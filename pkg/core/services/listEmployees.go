package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/lmorales/storeshift/pkg/db"
)

// ListEmployeesStore defines the database operations needed to list the
// roster
type ListEmployeesStore interface {
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	GetPermanentRules(ctx context.Context) ([]db.PermanentRule, error)
}

// EmployeeListing pairs a roster record with its rule kinds for display
type EmployeeListing struct {
	Employee  db.Employee
	RuleKinds []string
}

// ListEmployees returns the roster sorted by name, each entry annotated
// with the kinds of work-pattern rules attached to it.
func ListEmployees(
	ctx context.Context,
	database ListEmployeesStore,
	logger *zap.Logger,
	includeInactive bool,
) ([]EmployeeListing, error) {
	logger.Debug("Listing employees", zap.Bool("include_inactive", includeInactive))

	employees, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	rules, err := database.GetPermanentRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permanent rules: %w", err)
	}

	kindsByEmployee := make(map[string][]string)
	for _, rule := range rules {
		kindsByEmployee[rule.EmployeeID] = append(kindsByEmployee[rule.EmployeeID], rule.Kind)
	}

	listings := make([]EmployeeListing, 0, len(employees))
	for _, emp := range employees {
		if !emp.Active && !includeInactive {
			continue
		}
		listings = append(listings, EmployeeListing{
			Employee:  emp,
			RuleKinds: kindsByEmployee[emp.ID],
		})
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Employee.Name < listings[j].Employee.Name
	})

	logger.Debug("Listed employees", zap.Int("count", len(listings)))

	return listings, nil
}
