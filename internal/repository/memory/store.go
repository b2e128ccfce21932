// Package memory keeps every repository in process memory. It backs the
// "memory" database driver for local runs and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/settings"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	schedules map[string]schedule.WorkSchedule
	locations map[string]location.WorkLocation
	employees map[string]employee.Employee
	records   []attendance.TimeRecord
	codes     map[string]struct{}
	settings  *settings.SystemSettings
	logs      []hours.ReprocessLog

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		schedules: make(map[string]schedule.WorkSchedule),
		locations: make(map[string]location.WorkLocation),
		employees: make(map[string]employee.Employee),
		codes:     make(map[string]struct{}),
		now:       time.Now,
	}
}

// SetClock replaces the clock used for created/updated stamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// PutSchedule inserts or replaces a work schedule.
func (s *Store) PutSchedule(ws schedule.WorkSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schedules[ws.ID] = ws
}

// PutLocation inserts or replaces a work location.
func (s *Store) PutLocation(l location.WorkLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = l
}

// PutEmployee inserts or replaces an employee. Joined schedule and location
// are ignored; they are resolved from the IDs on every read.
func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.WorkSchedule, e.WorkLocation = nil, nil
	s.employees[e.ID] = e
}

// Records returns a copy of every stored time record in insertion order.
func (s *Store) Records() []attendance.TimeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]attendance.TimeRecord(nil), s.records...)
}

// unit journals the undo steps of one unit of work.
type unit struct {
	undo []func()
}

type txKey struct{}

// journal queues undo on the unit of work carried by ctx. Writes made outside
// a unit are never journaled. Callers hold s.mu.
func journal(ctx context.Context, undo func()) {
	if u, ok := ctx.Value(txKey{}).(*unit); ok {
		u.undo = append(u.undo, undo)
	}
}

// WithinTransaction serializes units of work. When fn fails only the writes
// made through its ctx are undone, newest first, so concurrent writes outside
// the unit survive. Nested calls join the outer unit.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*unit); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	u := &unit{}
	if err := fn(context.WithValue(ctx, txKey{}, u)); err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := len(u.undo) - 1; i >= 0; i-- {
			u.undo[i]()
		}
		return err
	}
	return nil
}

func (s *Store) joinLocked(e employee.Employee) employee.Employee {
	if e.WorkScheduleID != nil {
		if ws, ok := s.schedules[*e.WorkScheduleID]; ok {
			e.WorkSchedule = &ws
		}
	}
	if e.WorkLocationID != nil {
		if l, ok := s.locations[*e.WorkLocationID]; ok {
			e.WorkLocation = &l
		}
	}
	return e
}

func sortByTimestamp(records []attendance.TimeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}
