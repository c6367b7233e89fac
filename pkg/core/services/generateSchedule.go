package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lmorales/storeshift/internal/config"
	"github.com/lmorales/storeshift/pkg/core/scheduler"
	"github.com/lmorales/storeshift/pkg/db"
)

// GenerateScheduleStore defines the database operations needed to generate
// and persist a week plan
type GenerateScheduleStore interface {
	GetEmployees(ctx context.Context) ([]db.Employee, error)
	GetPermanentRules(ctx context.Context) ([]db.PermanentRule, error)
	GetHoursAdjustments(ctx context.Context) ([]db.HoursAdjustment, error)
	GetLeaveRequests(ctx context.Context) ([]db.LeaveRequest, error)
	GetHolidays(ctx context.Context, establishmentID string) ([]db.Holiday, error)
	InsertSchedule(ctx context.Context, schedule db.Schedule, assignments []db.ShiftAssignment, summaries []db.EmployeeWeekSummary) error
}

// GenerateScheduleOptions tunes one generation run
type GenerateScheduleOptions struct {
	// WeekStart is the Monday of the target week as "2006-01-02"; empty
	// means the next Monday from now.
	WeekStart string

	// Seed drives the day-preference shuffles; zero means pick a fresh one.
	Seed int64

	// DryRun computes the plan without saving it.
	DryRun bool

	// Force saves the plan even when the invariant check found violations.
	Force bool
}

// GenerateScheduleResult contains the generated plan and its persistence
// outcome for display
type GenerateScheduleResult struct {
	Outcome    *scheduler.Outcome
	ScheduleID string
	Saved      bool
}

// GenerateSchedule produces the week plan for the configured establishment.
// It loads the roster with its rules, hour overrides, approved leave and
// store holidays, expands the configured recurring closures into the target
// week, runs the engine and saves the result unless the run is a dry run or
// the plan violated an invariant without Force set.
func GenerateSchedule(
	ctx context.Context,
	database GenerateScheduleStore,
	cfg *config.Config,
	logger *zap.Logger,
	opts GenerateScheduleOptions,
) (*GenerateScheduleResult, error) {
	weekStart, err := parseWeekStart(opts.WeekStart, time.Now())
	if err != nil {
		return nil, err
	}

	week, err := scheduler.NewWeekWindow(weekStart)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Debug("Generating schedule",
		zap.String("week_start", week.Start.Format(dateLayout)),
		zap.String("establishment_id", cfg.EstablishmentID),
		zap.Int64("seed", seed))

	// Step 1: Fetch the roster and its scheduling inputs
	employeeRecords, err := database.GetEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}
	active := filterActiveEmployees(employeeRecords)
	logger.Debug("Fetched roster", zap.Int("total", len(employeeRecords)), zap.Int("active", len(active)))

	ruleRecords, err := database.GetPermanentRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permanent rules: %w", err)
	}

	adjustmentRecords, err := database.GetHoursAdjustments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hours adjustments: %w", err)
	}

	leaveRecords, err := database.GetLeaveRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leave requests: %w", err)
	}

	holidayRecords, err := database.GetHolidays(ctx, cfg.EstablishmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	// Step 2: Convert records into engine input
	rulesByEmployee := make(map[string][]scheduler.PermanentRule)
	for _, rec := range ruleRecords {
		rule, err := convertRule(rec)
		if err != nil {
			// A malformed or unrecognised rule must not silently loosen an
			// employee's constraints, so the run stops here.
			return nil, fmt.Errorf("invalid permanent rule: %w", err)
		}
		rulesByEmployee[rec.EmployeeID] = append(rulesByEmployee[rec.EmployeeID], rule)
	}

	for _, emp := range active {
		if dupes := scheduler.DuplicateRuleKinds(rulesByEmployee[emp.ID]); len(dupes) > 0 {
			for _, kind := range dupes {
				logger.Warn("Employee has multiple rules of the same kind, using the newest",
					zap.String("employee_id", emp.ID),
					zap.String("kind", string(kind)))
			}
		}
	}

	adjustmentsByEmployee := make(map[string][]scheduler.TempHoursAdjustment)
	for _, rec := range adjustmentRecords {
		adj, err := convertAdjustment(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid hours adjustment: %w", err)
		}
		adjustmentsByEmployee[rec.EmployeeID] = append(adjustmentsByEmployee[rec.EmployeeID], adj)
	}

	employees := convertEmployees(active, rulesByEmployee, adjustmentsByEmployee)

	var leaves []scheduler.LeaveRequest
	for _, rec := range leaveRecords {
		leave, err := convertLeave(rec)
		if err != nil {
			return nil, fmt.Errorf("invalid leave request: %w", err)
		}
		if leaveOverlapsWeek(leave, week) {
			leaves = append(leaves, leave)
		}
	}
	logger.Debug("Leave requests overlapping week", zap.Int("count", len(leaves)))

	holidays, err := convertHolidays(holidayRecords)
	if err != nil {
		return nil, fmt.Errorf("invalid holiday: %w", err)
	}

	closureHolidays, err := expandClosures(cfg.StoreClosures, week)
	if err != nil {
		return nil, fmt.Errorf("failed to expand store closures: %w", err)
	}
	holidays = append(holidays, closureHolidays...)
	logger.Debug("Holidays in week", zap.Int("count", len(holidays)))

	// Step 3: Run the engine
	outcome, err := scheduler.Generate(scheduler.GenerateInput{
		WeekStart:       week.Start,
		EstablishmentID: cfg.EstablishmentID,
		Employees:       employees,
		Holidays:        holidays,
		Leaves:          leaves,
		Seed:            seed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule: %w", err)
	}

	for _, v := range outcome.Violations {
		logger.Warn("Generated plan violates an invariant",
			zap.String("employee_id", v.EmployeeID),
			zap.String("invariant", v.Invariant),
			zap.String("description", v.Description))
	}

	result := &GenerateScheduleResult{Outcome: outcome}

	// Step 4: Persist unless told otherwise
	if opts.DryRun {
		logger.Info("Dry run, not saving schedule")
		return result, nil
	}
	if len(outcome.Violations) > 0 && !opts.Force {
		logger.Warn("Not saving schedule with violations, rerun with force to override",
			zap.Int("violations", len(outcome.Violations)))
		return result, nil
	}

	schedule := db.Schedule{
		ID:              uuid.New().String(),
		EstablishmentID: outcome.EstablishmentID,
		WeekStart:       outcome.Week.Start.Format(dateLayout),
		Seed:            outcome.Seed,
	}

	assignments := make([]db.ShiftAssignment, 0, len(outcome.Assignments))
	for _, a := range outcome.Assignments {
		assignments = append(assignments, db.ShiftAssignment{
			ID:         uuid.New().String(),
			ScheduleID: schedule.ID,
			EmployeeID: a.EmployeeID,
			Date:       a.Date.Format(dateLayout),
			ShiftType:  string(a.Shift),
		})
	}

	summaries := make([]db.EmployeeWeekSummary, 0, len(outcome.Summaries))
	for _, s := range outcome.Summaries {
		summaries = append(summaries, db.EmployeeWeekSummary{
			ID:             uuid.New().String(),
			ScheduleID:     schedule.ID,
			EmployeeID:     s.EmployeeID,
			TargetHours:    s.TargetHours,
			AssignedHours:  s.AssignedHours,
			ShortfallHours: s.ShortfallHours,
		})
	}

	if err := database.InsertSchedule(ctx, schedule, assignments, summaries); err != nil {
		return nil, fmt.Errorf("failed to save schedule: %w", err)
	}

	logger.Info("Schedule saved",
		zap.String("schedule_id", schedule.ID),
		zap.String("week_start", schedule.WeekStart),
		zap.Int("employees", len(outcome.Summaries)),
		zap.Int("shortfall_hours", outcome.TotalShortfallHours()))

	result.ScheduleID = schedule.ID
	result.Saved = true
	return result, nil
}
