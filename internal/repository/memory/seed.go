package memory

import (
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Seed is the fixture format accepted by LoadSeedFile.
type Seed struct {
	Schedules []SeedSchedule `yaml:"schedules"`
	Locations []SeedLocation `yaml:"locations"`
	Employees []SeedEmployee `yaml:"employees"`
}

type SeedSchedule struct {
	ID               string                   `yaml:"id"`
	Name             string                   `yaml:"name"`
	Type             string                   `yaml:"type"`
	WorkDays         []int                    `yaml:"work_days"`
	StartTime        string                   `yaml:"start_time"`
	EndTime          string                   `yaml:"end_time"`
	LunchStart       *string                  `yaml:"lunch_start"`
	LunchEnd         *string                  `yaml:"lunch_end"`
	ToleranceMinutes int                      `yaml:"tolerance_minutes"`
	WeeklyHours      string                   `yaml:"weekly_hours"`
	DayRules         map[int]schedule.DayRule `yaml:"day_rules"`
}

type SeedLocation struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Latitude     float64 `yaml:"latitude"`
	Longitude    float64 `yaml:"longitude"`
	RadiusMeters int     `yaml:"radius_meters"`
}

type SeedEmployee struct {
	ID             string  `yaml:"id"`
	UserID         string  `yaml:"user_id"`
	EmployeeCode   string  `yaml:"employee_code"`
	FullName       string  `yaml:"full_name"`
	Department     *string `yaml:"department"`
	WorkScheduleID *string `yaml:"work_schedule_id"`
	WorkLocationID *string `yaml:"work_location_id"`
	IsRemote       bool    `yaml:"is_remote"`
	LunchStart     *string `yaml:"lunch_start"`
	LunchEnd       *string `yaml:"lunch_end"`
	Inactive       bool    `yaml:"inactive"`
}

// LoadSeedFile reads a YAML fixture from path into s.
func (s *Store) LoadSeedFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	return s.Load(seed)
}

// Load inserts every fixture in seed.
func (s *Store) Load(seed Seed) error {
	now := time.Now()

	for _, sc := range seed.Schedules {
		ws := schedule.WorkSchedule{
			ID:               sc.ID,
			Name:             sc.Name,
			Type:             schedule.PatternType(sc.Type),
			StartTime:        sc.StartTime,
			EndTime:          sc.EndTime,
			LunchStart:       sc.LunchStart,
			LunchEnd:         sc.LunchEnd,
			ToleranceMinutes: sc.ToleranceMinutes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		for _, d := range sc.WorkDays {
			if d < 0 || d > 6 {
				return fmt.Errorf("schedule %s: %w", sc.ID, schedule.ErrInvalidDayRules)
			}
			ws.WorkDays = append(ws.WorkDays, time.Weekday(d))
		}
		for d, rule := range sc.DayRules {
			if d < 0 || d > 6 {
				return fmt.Errorf("schedule %s: %w", sc.ID, schedule.ErrInvalidDayRules)
			}
			r := rule
			ws.DayRules.Set(time.Weekday(d), &r)
		}
		if sc.WeeklyHours != "" {
			hours, err := decimal.NewFromString(sc.WeeklyHours)
			if err != nil {
				return fmt.Errorf("schedule %s weekly_hours: %w", sc.ID, err)
			}
			ws.WeeklyHours = hours
		}
		s.PutSchedule(ws)
	}

	for _, l := range seed.Locations {
		s.PutLocation(location.WorkLocation{
			ID:           l.ID,
			Name:         l.Name,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
			RadiusMeters: l.RadiusMeters,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	for i, e := range seed.Employees {
		emp := employee.Employee{
			ID:             e.ID,
			EmployeeCode:   e.EmployeeCode,
			FullName:       e.FullName,
			Department:     e.Department,
			WorkScheduleID: e.WorkScheduleID,
			WorkLocationID: e.WorkLocationID,
			IsRemote:       e.IsRemote,
			LunchStart:     e.LunchStart,
			LunchEnd:       e.LunchEnd,
			IsActive:       !e.Inactive,
			CreatedAt:      now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt:      now,
		}
		if e.UserID != "" {
			userID := e.UserID
			emp.UserID = &userID
		}
		s.PutEmployee(emp)
	}

	return nil
}
