package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/daterange"
	"golang.org/x/sync/errgroup"
)

const filterAll = "all"

type DashboardServiceImpl struct {
	timeRecordRepo attendance.TimeRecordRepository
	employeeRepo   employee.EmployeeRepository
	scheduleRepo   schedule.WorkScheduleRepository
	loc            *time.Location
	now            func() time.Time
}

func NewDashboardService(
	timeRecordRepo attendance.TimeRecordRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.WorkScheduleRepository,
	loc *time.Location,
	now func() time.Time,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		timeRecordRepo: timeRecordRepo,
		employeeRepo:   employeeRepo,
		scheduleRepo:   scheduleRepo,
		loc:            loc,
		now:            now,
	}
}

// GetDashboard loads employees, schedules and records in parallel and
// computes every section from that single snapshot.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, req dashboard.DashboardRequest) (dashboard.DashboardResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	ref, err := daterange.ParseDate(req.Date, s.loc, s.now())
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}
	custom, hasCustom, err := daterange.ParseCustom(req.Start, req.End, s.loc)
	if err != nil {
		return dashboard.DashboardResponse{}, err
	}

	day := daterange.DayOf(ref)
	week := daterange.WeekOf(ref)
	month := daterange.MonthOf(ref)
	base := day
	if hasCustom {
		base = custom
	}
	span := union(base, week, month)

	filter := employee.ListFilter{ActiveOnly: true}
	if req.ScheduleID != "" && req.ScheduleID != filterAll {
		filter.WorkScheduleID = &req.ScheduleID
	}

	var (
		employees []employee.Employee
		schedules []schedule.WorkSchedule
		records   []attendance.TimeRecord
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.employeeRepo.ListAll(gCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		employees = list
		return nil
	})

	g.Go(func() error {
		list, err := s.scheduleRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list work schedules: %w", err)
		}
		schedules = list
		return nil
	})

	g.Go(func() error {
		list, err := s.timeRecordRepo.ListBetween(gCtx, span.Start, span.End)
		if err != nil {
			return fmt.Errorf("failed to list time records: %w", err)
		}
		records = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	employees = filterDepartment(employees, req.Department)
	byEmployee := make(map[string][]attendance.TimeRecord, len(employees))
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}
	c := calculator{loc: s.loc, employees: employees, records: byEmployee}

	resp := dashboard.DashboardResponse{
		Date:    daterange.DayKey(ref, s.loc),
		Range:   dashboard.Range{Start: base.Start, End: base.End},
		Totals:  c.totals(base),
		Periods: dashboard.Periods{
			Day:   c.totals(day),
			Week:  c.totals(week),
			Month: c.totals(month),
		},
		Series:   c.series(base),
		Rankings: c.rankings(base),
		Filters: dashboard.Filters{
			Departments: departments(employees),
			Schedules:   scheduleOptions(schedules),
		},
	}
	if hasCustom {
		resp.Lists = c.rangeLists(base)
	} else {
		resp.Lists = c.dayLists(day)
	}
	return resp, nil
}

// calculator answers every dashboard question from one in-memory snapshot.
type calculator struct {
	loc       *time.Location
	employees []employee.Employee
	records   map[string][]attendance.TimeRecord
}

func (c calculator) within(empID string, period daterange.Range) []attendance.TimeRecord {
	var out []attendance.TimeRecord
	for _, r := range c.records[empID] {
		if period.Contains(r.Timestamp) {
			out = append(out, r)
		}
	}
	return out
}

func (c calculator) entries(empID string, period daterange.Range) []attendance.TimeRecord {
	var out []attendance.TimeRecord
	for _, r := range c.within(empID, period) {
		if r.Kind == attendance.PunchEntry {
			out = append(out, r)
		}
	}
	return out
}

// isLate reports whether an entry came after the resolved start plus
// tolerance. Employees without a usable start time are never late.
func (c calculator) isLate(emp employee.Employee, entry time.Time) bool {
	if emp.WorkSchedule == nil {
		return false
	}
	local := entry.In(c.loc)
	rule := schedule.Resolve(emp.WorkSchedule, local.Weekday(), schedule.LunchOverride{})
	start, ok := schedule.ParseClock(rule.StartTime)
	if !ok {
		return false
	}
	return schedule.MinuteOfDay(local) > start+emp.WorkSchedule.Tolerance()
}

func (c calculator) totals(period daterange.Range) dashboard.Totals {
	t := dashboard.Totals{Employees: len(c.employees)}
	for _, emp := range c.employees {
		if len(c.within(emp.ID, period)) > 0 {
			t.Punched++
		}
		for _, entry := range c.entries(emp.ID, period) {
			if c.isLate(emp, entry.Timestamp) {
				t.Late++
				break
			}
		}
	}
	t.Absent = max(t.Employees-t.Punched, 0)
	return t
}

func (c calculator) dayLists(day daterange.Range) dashboard.Lists {
	lists := emptyLists()
	weekday := day.Start.In(c.loc).Weekday()

	for _, emp := range c.employees {
		entries := c.entries(emp.ID, day)
		if len(entries) == 0 {
			if emp.WorkSchedule != nil && emp.WorkSchedule.WorksOn(weekday) {
				lists.Absent = append(lists.Absent, row(emp, nil))
			}
			continue
		}

		first := entries[0].Timestamp
		lists.Punched = append(lists.Punched, row(emp, &first))
		if c.isLate(emp, first) {
			lists.Late = append(lists.Late, row(emp, &first))
		}
	}
	return lists
}

// rangeLists lists each employee at most once per list. A late row carries
// the employee's first late entry.
func (c calculator) rangeLists(period daterange.Range) dashboard.Lists {
	lists := emptyLists()

	for _, emp := range c.employees {
		entries := c.entries(emp.ID, period)
		if len(entries) == 0 {
			lists.Absent = append(lists.Absent, row(emp, nil))
			continue
		}

		first := entries[0].Timestamp
		lists.Punched = append(lists.Punched, row(emp, &first))
		for _, entry := range entries {
			if c.isLate(emp, entry.Timestamp) {
				ts := entry.Timestamp
				lists.Late = append(lists.Late, row(emp, &ts))
				break
			}
		}
	}
	return lists
}

func (c calculator) series(period daterange.Range) []dashboard.SeriesPoint {
	days := calendarDays(period, c.loc)
	step := max((len(days)+dashboard.MaxSeriesPoints-1)/dashboard.MaxSeriesPoints, 1)

	points := make([]dashboard.SeriesPoint, 0, dashboard.MaxSeriesPoints)
	for i := 0; i < len(days); i += step {
		t := c.totals(daterange.DayOf(days[i]))
		points = append(points, dashboard.SeriesPoint{
			Date:    daterange.DayKey(days[i], c.loc),
			Punched: t.Punched,
			Late:    t.Late,
			Absent:  t.Absent,
		})
	}
	return points
}

// rankings counts late entries and scheduled days without an entry per
// employee across period.
func (c calculator) rankings(period daterange.Range) dashboard.Rankings {
	days := calendarDays(period, c.loc)
	late := make([]dashboard.RankingRow, 0, len(c.employees))
	absent := make([]dashboard.RankingRow, 0, len(c.employees))

	for _, emp := range c.employees {
		entered := make(map[string]bool)
		lateCount := 0
		for _, entry := range c.entries(emp.ID, period) {
			entered[daterange.DayKey(entry.Timestamp, c.loc)] = true
			if c.isLate(emp, entry.Timestamp) {
				lateCount++
			}
		}

		absentCount := 0
		if emp.WorkSchedule != nil {
			for _, d := range days {
				if emp.WorkSchedule.WorksOn(d.Weekday()) && !entered[daterange.DayKey(d, c.loc)] {
					absentCount++
				}
			}
		}

		if lateCount > 0 {
			late = append(late, dashboard.RankingRow{ID: emp.ID, Name: emp.FullName, Count: lateCount})
		}
		if absentCount > 0 {
			absent = append(absent, dashboard.RankingRow{ID: emp.ID, Name: emp.FullName, Count: absentCount})
		}
	}

	return dashboard.Rankings{Late: topRows(late), Absent: topRows(absent)}
}

func topRows(rows []dashboard.RankingRow) []dashboard.RankingRow {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })
	if len(rows) > dashboard.MaxRankingRows {
		rows = rows[:dashboard.MaxRankingRows]
	}
	return rows
}

func row(emp employee.Employee, entry *time.Time) dashboard.EmployeeRow {
	return dashboard.EmployeeRow{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.FullName,
		Department:   emp.Department,
		EntryTime:    entry,
	}
}

func emptyLists() dashboard.Lists {
	return dashboard.Lists{
		Punched: []dashboard.EmployeeRow{},
		Late:    []dashboard.EmployeeRow{},
		Absent:  []dashboard.EmployeeRow{},
	}
}

// calendarDays returns midnight of every local day touched by period.
func calendarDays(period daterange.Range, loc *time.Location) []time.Time {
	var days []time.Time
	for d := daterange.StartOfDay(period.Start.In(loc)); !d.After(period.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func union(ranges ...daterange.Range) daterange.Range {
	out := ranges[0]
	for _, r := range ranges[1:] {
		if r.Start.Before(out.Start) {
			out.Start = r.Start
		}
		if r.End.After(out.End) {
			out.End = r.End
		}
	}
	return out
}

func filterDepartment(employees []employee.Employee, department string) []employee.Employee {
	department = strings.TrimSpace(department)
	if department == "" || department == filterAll {
		return employees
	}
	out := employees[:0:0]
	for _, emp := range employees {
		if emp.Department != nil && *emp.Department == department {
			out = append(out, emp)
		}
	}
	return out
}

func departments(employees []employee.Employee) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, emp := range employees {
		if emp.Department == nil || *emp.Department == "" || seen[*emp.Department] {
			continue
		}
		seen[*emp.Department] = true
		out = append(out, *emp.Department)
	}
	sort.Strings(out)
	return out
}

func scheduleOptions(schedules []schedule.WorkSchedule) []dashboard.ScheduleOption {
	out := make([]dashboard.ScheduleOption, 0, len(schedules))
	for _, ws := range schedules {
		out = append(out, dashboard.ScheduleOption{ID: ws.ID, Name: ws.Name})
	}
	return out
}
