package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lmorales/storeshift/internal/config"
	"github.com/lmorales/storeshift/pkg/db"
)

// ViewScheduleStore defines the database operations needed to display a
// stored schedule
type ViewScheduleStore interface {
	GetSchedules(ctx context.Context, establishmentID string) ([]db.Schedule, error)
	GetShiftAssignments(ctx context.Context, scheduleID string) ([]db.ShiftAssignment, error)
	GetWeekSummaries(ctx context.Context, scheduleID string) ([]db.EmployeeWeekSummary, error)
	GetEmployees(ctx context.Context) ([]db.Employee, error)
}

// ViewScheduleResult contains a stored week plan for display
type ViewScheduleResult struct {
	Schedule    db.Schedule
	Assignments []db.ShiftAssignment
	Summaries   []db.EmployeeWeekSummary

	// Names maps employee IDs to display names for the roster as it exists
	// now; an ID missing here belonged to a since-deleted employee.
	Names map[string]string
}

// ViewSchedule loads a stored schedule by week start, or the most recently
// generated one when weekStart is empty. When several schedules exist for
// the same week the newest wins.
func ViewSchedule(
	ctx context.Context,
	database ViewScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	weekStart string,
) (*ViewScheduleResult, error) {
	logger.Debug("Viewing schedule",
		zap.String("establishment_id", cfg.EstablishmentID),
		zap.String("week_start", weekStart))

	schedules, err := database.GetSchedules(ctx, cfg.EstablishmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	if len(schedules) == 0 {
		return nil, fmt.Errorf("no schedules found for establishment %s", cfg.EstablishmentID)
	}

	var selected *db.Schedule
	if weekStart == "" {
		selected = findLatestSchedule(schedules)
	} else {
		// Records come back ordered by creation time, so the last match is
		// the newest schedule for that week.
		for i := range schedules {
			if schedules[i].WeekStart == weekStart {
				selected = &schedules[i]
			}
		}
		if selected == nil {
			return nil, fmt.Errorf("no schedule found for week %s", weekStart)
		}
	}

	logger.Debug("Selected schedule",
		zap.String("schedule_id", selected.ID),
		zap.String("week_start", selected.WeekStart))

	assignments, err := database.GetShiftAssignments(ctx, selected.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift assignments: %w", err)
	}

	summaries, err := database.GetWeekSummaries(ctx, selected.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch week summaries: %w", err)
	}

	employees, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	return &ViewScheduleResult{
		Schedule:    *selected,
		Assignments: assignments,
		Summaries:   summaries,
		Names:       names,
	}, nil
}
