package seed

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/carehome-admin/pkg/helpers"
)

var saturday = time.Date(2026, 10, 17, 15, 0, 0, 0, time.UTC)

func TestMonday(t *testing.T) {
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), monday(saturday))
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), monday(time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), monday(time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)))
}

func TestRunAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	ok := sqlmock.NewResult(0, 1)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO admins").WillReturnResult(ok)
	for i := 1; i <= Rooms; i++ {
		mock.ExpectQuery("INSERT INTO rooms").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100 + i)))
	}
	for i := 1; i <= StaffCount; i++ {
		mock.ExpectExec("INSERT INTO staff").WillReturnResult(ok)
	}
	for i := 1; i <= Families; i++ {
		mock.ExpectExec("INSERT INTO family_members").WillReturnResult(ok)
	}
	for i := 1; i <= Residents; i++ {
		e := mock.ExpectExec("INSERT INTO residents")
		if i == 3 {
			// third resident: LOW care, second family, (3 mod 6)+1 = Room 4
			e.WithArgs("resident3", "Resident 3", sqlmock.AnyArg(), "LOW", "family2", int64(104))
		}
		e.WillReturnResult(ok)
	}
	for i := 1; i <= Events; i++ {
		mock.ExpectExec("INSERT INTO events").WillReturnResult(ok)
	}
	for i := 1; i <= Announcements; i++ {
		mock.ExpectExec("INSERT INTO announcements").WillReturnResult(ok)
	}
	for i := 1; i <= Routines; i++ {
		e := mock.ExpectExec("INSERT INTO care_routines")
		if i == 7 {
			start := time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)
			e.WithArgs("Routine 7", "Medication", "TUESDAY", start, start.Add(45*time.Minute), int64(101), "staff3")
		}
		e.WillReturnResult(ok)
	}
	mock.ExpectExec("INSERT INTO care_plans").WillReturnResult(ok)
	mock.ExpectCommit()

	var out bytes.Buffer
	jwt := helpers.NewJWTManager("dev", time.Hour)
	require.NoError(t, RunAt(context.Background(), db, &out, jwt, saturday))
	require.NoError(t, mock.ExpectationsWereMet())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "50 residents")

	fields := strings.Fields(lines[2])
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"nurse", "staff1"}, fields[:2])
	claims, err := jwt.ParseAccessToken(fields[2])
	require.NoError(t, err)
	assert.Equal(t, "staff1", claims.CallerID())
	assert.Equal(t, "nurse", claims.Role)
}

func TestRun_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO admins").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO rooms").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	var out bytes.Buffer
	err = Run(context.Background(), db, &out, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed room 1")
	assert.Empty(t, out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
