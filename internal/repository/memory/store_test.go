package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const seedYAML = `
schedules:
  - id: ws-1
    name: Office
    type: 5x2
    work_days: [1, 2, 3, 4, 5]
    start_time: "08:00"
    end_time: "17:00"
    lunch_start: "12:00"
    lunch_end: "13:00"
    tolerance_minutes: 10
    weekly_hours: "40"
    day_rules:
      5:
        end_time: "16:00"
locations:
  - id: loc-1
    name: HQ
    latitude: -23.55
    longitude: -46.63
    radius_meters: 100
employees:
  - id: emp-1
    user_id: user-1
    employee_code: E001
    full_name: Ana Lima
    work_schedule_id: ws-1
    work_location_id: loc-1
`

func seededStore(t *testing.T) *Store {
	t.Helper()
	var seed Seed
	require.NoError(t, yaml.Unmarshal([]byte(seedYAML), &seed))
	s := NewStore()
	require.NoError(t, s.Load(seed))
	return s
}

func TestLoad_JoinsScheduleAndLocation(t *testing.T) {
	s := seededStore(t)

	emp, err := s.Employees().GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, emp.WorkSchedule)
	require.NotNil(t, emp.WorkLocation)
	assert.Equal(t, "Office", emp.WorkSchedule.Name)
	assert.Equal(t, 100, emp.WorkLocation.RadiusMeters)
	assert.True(t, emp.WorkSchedule.WeeklyHours.Equal(decimal.NewFromInt(40)))

	rule, ok := emp.WorkSchedule.DayRules.For(time.Friday)
	require.True(t, ok)
	assert.Equal(t, "16:00", *rule.EndTime)
}

func TestTimeRecords_UniqueCode(t *testing.T) {
	s := seededStore(t)
	repo := s.TimeRecords()
	ctx := context.Background()

	_, err := repo.Create(ctx, attendance.TimeRecord{EmployeeID: "emp-1", Kind: attendance.PunchEntry, ConfirmationCode: "ABC123-XYZ789"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.TimeRecord{EmployeeID: "emp-1", Kind: attendance.PunchExit, ConfirmationCode: "ABC123-XYZ789"})
	assert.ErrorIs(t, err, attendance.ErrConfirmationCodeExists)

	exists, err := repo.ExistsByConfirmationCode(ctx, "ABC123-XYZ789")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWithinTransaction_RollsBack(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, s.Employees().AdjustHoursBalance(ctx, "emp-1", decimal.NewFromInt(2)))
		_, err := s.TimeRecords().Create(ctx, attendance.TimeRecord{EmployeeID: "emp-1", ConfirmationCode: "X"})
		require.NoError(t, err)
		return errors.New("boom")
	})
	require.Error(t, err)

	emp, err := s.Employees().GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, emp.HoursBalance.IsZero())
	assert.Empty(t, s.Records())
}

func TestWithinTransaction_RollbackKeepsConcurrentWrites(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()
	grant := &employee.PunchOverrideGrant{Until: time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), GrantedBy: "admin-1"}

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, s.Employees().AdjustHoursBalance(txCtx, "emp-1", decimal.NewFromInt(3)))

		done := make(chan error, 1)
		go func() { done <- s.Employees().SetPunchOverride(ctx, "emp-1", grant) }()
		require.NoError(t, <-done)

		_, err := s.Settings().Update(ctx, settings.SystemSettings{AllowManagerOutOfSchedule: true})
		require.NoError(t, err)
		return errors.New("boom")
	})
	require.Error(t, err)

	emp, err := s.Employees().GetByID(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, emp.HoursBalance.IsZero())
	require.NotNil(t, emp.PunchOverride)
	assert.Equal(t, "admin-1", emp.PunchOverride.GrantedBy)

	cfg, err := s.Settings().GetOrCreate(ctx, settings.SystemSettings{})
	require.NoError(t, err)
	assert.True(t, cfg.AllowManagerOutOfSchedule)
}

func TestWithinTransaction_CommitKeepsWrites(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.TimeRecords().Create(ctx, attendance.TimeRecord{EmployeeID: "emp-1", ConfirmationCode: "Y"})
		require.NoError(t, err)
		_, err = s.ReprocessLogs().Create(ctx, hours.ReprocessLog{UpdatedEmployees: 1})
		return err
	})
	require.NoError(t, err)

	assert.Len(t, s.Records(), 1)
	logs, err := s.ReprocessLogs().List(ctx, hours.LogFilter{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestEmployees_NotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Employees().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, s.Employees().SetHoursBalance(context.Background(), "missing", decimal.Zero), employee.ErrEmployeeNotFound)
}

func TestReprocessLogs_NewestFirstAndCapped(t *testing.T) {
	s := NewStore()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for i := 0; i < hours.MaxLogs+5; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		s.SetClock(func() time.Time { return at })
		_, err := s.ReprocessLogs().Create(ctx, hours.ReprocessLog{UpdatedEmployees: i})
		require.NoError(t, err)
	}

	logs, err := s.ReprocessLogs().List(ctx, hours.LogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, hours.MaxLogs)
	assert.Equal(t, hours.MaxLogs+4, logs[0].UpdatedEmployees)

	from := base.Add(50 * time.Hour)
	logs, err = s.ReprocessLogs().List(ctx, hours.LogFilter{CreatedFrom: &from})
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}

func TestLoadSeedFile_Example(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.LoadSeedFile("../../../configs/seed.example.yaml"))

	emp, err := s.Employees().GetByUserID(context.Background(), "0190a5e4-0000-7000-8000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "E001", emp.EmployeeCode)
	require.NotNil(t, emp.WorkSchedule)
	assert.True(t, emp.WorkSchedule.WorksOn(time.Friday))
	require.NotNil(t, emp.WorkLocation)
	assert.Equal(t, 100, emp.WorkLocation.RadiusMeters)

	remote, err := s.Employees().GetByUserID(context.Background(), "0190a5e4-0000-7000-8000-000000000002")
	require.NoError(t, err)
	assert.True(t, remote.IsRemote)
	assert.Nil(t, remote.WorkLocation)

	assert.Error(t, s.LoadSeedFile("does-not-exist.yaml"))
}
