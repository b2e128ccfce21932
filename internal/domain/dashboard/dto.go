package dashboard

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// MaxSeriesPoints caps the number of daily points in the series.
const MaxSeriesPoints = 14

// MaxRankingRows caps each ranking list.
const MaxRankingRows = 5

type DashboardRequest struct {
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Start      string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End        string `json:"end" validate:"omitempty,datetime=2006-01-02"`
	ScheduleID string `json:"schedule_id" validate:"omitempty,uuid|eq=all"`
	Department string `json:"department"`
}

func (r *DashboardRequest) Validate() error {
	return validator.Struct(r)
}

// ========== TOTALS ==========

type Totals struct {
	Employees int `json:"employees"`
	Punched   int `json:"punched"`
	Late      int `json:"late"`
	Absent    int `json:"absent"`
}

type Periods struct {
	Day   Totals `json:"day"`
	Week  Totals `json:"week"`
	Month Totals `json:"month"`
}

// ========== LISTS ==========

type EmployeeRow struct {
	ID           string     `json:"id"`
	EmployeeCode string     `json:"employee_code"`
	Name         string     `json:"name"`
	Department   *string    `json:"department"`
	EntryTime    *time.Time `json:"entry_time"`
}

type Lists struct {
	Punched []EmployeeRow `json:"punched"`
	Late    []EmployeeRow `json:"late"`
	Absent  []EmployeeRow `json:"absent"`
}

// ========== SERIES & RANKINGS ==========

type SeriesPoint struct {
	Date    string `json:"date"`
	Punched int    `json:"punched"`
	Late    int    `json:"late"`
	Absent  int    `json:"absent"`
}

type RankingRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Rankings struct {
	Late   []RankingRow `json:"late"`
	Absent []RankingRow `json:"absent"`
}

// ========== FILTERS ==========

type ScheduleOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Filters struct {
	Departments []string         `json:"departments"`
	Schedules   []ScheduleOption `json:"schedules"`
}

type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DashboardResponse is the combined response for the admin dashboard
type DashboardResponse struct {
	Date     string        `json:"date"`
	Range    Range         `json:"range"`
	Totals   Totals        `json:"totals"`
	Periods  Periods       `json:"periods"`
	Lists    Lists         `json:"lists"`
	Series   []SeriesPoint `json:"series"`
	Rankings Rankings      `json:"rankings"`
	Filters  Filters       `json:"filters"`
}
