package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employeeID = "0190a5e4-7f3a-7c4e-9b1d-2f6a8c0d1e2f"
	missingID  = "0190a5e4-0000-7000-8000-000000000000"
)

var (
	loc = time.FixedZone("BRT", -3*60*60)
	now = time.Date(2024, 1, 15, 9, 30, 0, 0, loc)
)

func strPtr(s string) *string { return &s }

func setup(t *testing.T) (*memory.Store, employee.EmployeeService) {
	t.Helper()
	store := memory.NewStore()
	store.PutEmployee(employee.Employee{
		ID:           employeeID,
		UserID:       strPtr("user-1"),
		EmployeeCode: "E001",
		FullName:     "Ana Lima",
		IsActive:     true,
	})
	return store, NewEmployeeService(store.Employees(), loc, func() time.Time { return now })
}

func asCaller(t *testing.T, identity user.Identity) context.Context {
	t.Helper()
	svc := jwt.NewJWTService("test-secret", "5m")
	token, _, err := svc.GenerateAccessToken(identity)
	require.NoError(t, err)
	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func TestSetPunchOverride_DefaultsToEndOfDay(t *testing.T) {
	store, svc := setup(t)
	ctx := asCaller(t, user.Identity{UserID: "hr-1", Role: user.RoleHR})

	resp, err := svc.SetPunchOverride(ctx, employee.SetPunchOverrideRequest{
		EmployeeID: employeeID,
		Reason:     strPtr("  medical appointment  "),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.OverrideUntil)
	assert.Equal(t, time.Date(2024, 1, 15, 23, 59, 59, int(999*time.Millisecond), loc), *resp.OverrideUntil)
	assert.Equal(t, "hr-1", *resp.OverrideBy)
	assert.Equal(t, "medical appointment", *resp.Reason)

	emp, err := store.Employees().GetByID(context.Background(), employeeID)
	require.NoError(t, err)
	require.NotNil(t, emp.PunchOverride)
	assert.True(t, emp.PunchOverride.ActiveAt(now))
	assert.Equal(t, "hr-1", emp.PunchOverride.GrantedBy)
}

func TestSetPunchOverride_ExplicitUntil(t *testing.T) {
	_, svc := setup(t)
	ctx := asCaller(t, user.Identity{UserID: "hr-1", Role: user.RoleHR})

	resp, err := svc.SetPunchOverride(ctx, employee.SetPunchOverrideRequest{
		EmployeeID:    employeeID,
		OverrideUntil: strPtr("2024-01-16T18:00:00-03:00"),
	})
	require.NoError(t, err)
	assert.True(t, resp.OverrideUntil.Equal(time.Date(2024, 1, 16, 18, 0, 0, 0, loc)))
	assert.Nil(t, resp.Reason)
}

func TestSetPunchOverride_Errors(t *testing.T) {
	_, svc := setup(t)
	ctx := asCaller(t, user.Identity{UserID: "hr-1", Role: user.RoleHR})

	_, err := svc.SetPunchOverride(ctx, employee.SetPunchOverrideRequest{
		EmployeeID:    employeeID,
		OverrideUntil: strPtr("2024-01-15T08:00:00-03:00"),
	})
	assert.ErrorIs(t, err, employee.ErrOverrideInThePast)

	_, err = svc.SetPunchOverride(ctx, employee.SetPunchOverrideRequest{EmployeeID: missingID})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.SetPunchOverride(ctx, employee.SetPunchOverrideRequest{EmployeeID: "nope"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.SetPunchOverride(context.Background(), employee.SetPunchOverrideRequest{EmployeeID: employeeID})
	assert.ErrorIs(t, err, user.ErrMissingIdentity)
}

func TestClearPunchOverride(t *testing.T) {
	store, svc := setup(t)
	ctx := asCaller(t, user.Identity{UserID: "hr-1", Role: user.RoleHR})

	_, err := svc.SetPunchOverride(ctx, employee.SetPunchOverrideRequest{EmployeeID: employeeID})
	require.NoError(t, err)

	resp, err := svc.ClearPunchOverride(ctx, employeeID)
	require.NoError(t, err)
	assert.Nil(t, resp.OverrideUntil)

	emp, err := store.Employees().GetByID(context.Background(), employeeID)
	require.NoError(t, err)
	assert.Nil(t, emp.PunchOverride)

	_, err = svc.ClearPunchOverride(ctx, missingID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpdateLunch(t *testing.T) {
	store, svc := setup(t)
	ctx := context.Background()

	resp, err := svc.UpdateLunch(ctx, employee.UpdateLunchRequest{
		EmployeeID: employeeID,
		LunchStart: strPtr("11:30"),
		LunchEnd:   strPtr("12:15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11:30", *resp.LunchStart)

	emp, err := store.Employees().GetByID(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, "12:15", *emp.LunchEnd)

	// empty strings clear the personal window
	resp, err = svc.UpdateLunch(ctx, employee.UpdateLunchRequest{
		EmployeeID: employeeID,
		LunchStart: strPtr(""),
		LunchEnd:   strPtr(" "),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.LunchStart)
	assert.Nil(t, resp.LunchEnd)

	_, err = svc.UpdateLunch(ctx, employee.UpdateLunchRequest{
		EmployeeID: employeeID,
		LunchStart: strPtr("13:00"),
		LunchEnd:   strPtr("12:00"),
	})
	assert.ErrorIs(t, err, employee.ErrInvalidLunchWindow)

	_, err = svc.UpdateLunch(ctx, employee.UpdateLunchRequest{
		EmployeeID: employeeID,
		LunchStart: strPtr("25:00"),
	})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
