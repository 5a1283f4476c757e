package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clinic-services/config"
	"clinic-services/internal/client"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/repository"
)

type timetableFixture struct {
	checker      *client.MemoryExistenceChecker
	timetables   TimetableUsecase
	appointments AppointmentUsecase
}

func newTimetableFixture(t *testing.T) *timetableFixture {
	t.Helper()
	db := openDB(t, config.ServiceTimetable)
	log := quietLogger()

	checker := client.NewMemoryExistenceChecker()
	checker.AddHospital(1, "101", "102")
	checker.AddDoctor(2)
	checker.AddUser(3)

	timetableRepo := repository.NewTimetableRepository()
	return &timetableFixture{
		checker:      checker,
		timetables:   NewTimetableUsecase(db, log, timetableRepo, checker),
		appointments: NewAppointmentUsecase(db, log, timetableRepo, repository.NewAppointmentRepository()),
	}
}

func (f *timetableFixture) create(t *testing.T, from, to string) *dto.TimetableResponse {
	t.Helper()
	timetable, err := f.timetables.Create(context.Background(), &dto.TimetableRequest{
		HospitalID: 1,
		DoctorID:   2,
		From:       at(from),
		To:         at(to),
		Room:       "101",
	})
	if err != nil {
		t.Fatalf("Create timetable: %v", err)
	}
	return timetable
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		want     error
	}{
		{"one hour", at("09:00"), at("10:00"), nil},
		{"twelve hours", at("08:00"), at("20:00"), nil},
		{"misaligned start", at("09:15"), at("10:00"), ErrMisalignedTime},
		{"seconds", at("09:00").Add(time.Second), at("10:00"), ErrMisalignedTime},
		{"empty", at("09:00"), at("09:00"), ErrInvertedWindow},
		{"inverted", at("10:00"), at("09:00"), ErrInvertedWindow},
		{"too long", at("08:00"), at("20:30"), ErrWindowTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateWindow(tt.from, tt.to); !errors.Is(err, tt.want) {
				t.Errorf("ValidateWindow() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTimetableUsecase_CreateChecksReferences(t *testing.T) {
	f := newTimetableFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.TimetableRequest
	}{
		{"unknown hospital", dto.TimetableRequest{HospitalID: 9, DoctorID: 2, From: at("09:00"), To: at("10:00"), Room: "101"}},
		{"unknown room", dto.TimetableRequest{HospitalID: 1, DoctorID: 2, From: at("09:00"), To: at("10:00"), Room: "999"}},
		{"patient as doctor", dto.TimetableRequest{HospitalID: 1, DoctorID: 3, From: at("09:00"), To: at("10:00"), Room: "101"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.timetables.Create(ctx, &tt.req); !errors.Is(err, ErrInvalidReference) {
				t.Errorf("Create error = %v, want ErrInvalidReference", err)
			}
		})
	}
}

func TestTimetableUsecase_DependencyOutage(t *testing.T) {
	f := newTimetableFixture(t)
	f.checker.Err = client.ErrDependencyUnavailable

	_, err := f.timetables.Create(context.Background(), &dto.TimetableRequest{
		HospitalID: 1, DoctorID: 2, From: at("09:00"), To: at("10:00"), Room: "101",
	})
	if !errors.Is(err, client.ErrDependencyUnavailable) {
		t.Fatalf("Create error = %v, want ErrDependencyUnavailable", err)
	}
	if errors.Is(err, ErrInvalidReference) {
		t.Error("outage reported as invalid reference")
	}
}

func TestAppointmentUsecase_BookingRemovesSlot(t *testing.T) {
	f := newTimetableFixture(t)
	ctx := context.Background()
	timetable := f.create(t, "09:00", "10:00")
	patient := principal(3)

	free, err := f.appointments.FreeSlots(ctx, timetable.ID)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	assertTimes(t, free, at("09:00"), at("09:30"), at("10:00"))

	if _, err := f.appointments.Book(ctx, patient, timetable.ID, at("09:30")); err != nil {
		t.Fatalf("Book: %v", err)
	}

	free, err = f.appointments.FreeSlots(ctx, timetable.ID)
	if err != nil {
		t.Fatal(err)
	}
	assertTimes(t, free, at("09:00"), at("10:00"))

	if _, err := f.appointments.Book(ctx, principal(4), timetable.ID, at("09:30")); !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("second Book error = %v, want ErrSlotOccupied", err)
	}
}

func TestAppointmentUsecase_BookRejectsBadTimes(t *testing.T) {
	f := newTimetableFixture(t)
	ctx := context.Background()
	timetable := f.create(t, "09:00", "10:00")

	tests := []struct {
		name string
		at   time.Time
		want error
	}{
		{"before window", at("08:30"), ErrOutOfBounds},
		{"after window", at("10:30"), ErrOutOfBounds},
		{"misaligned", at("09:10"), ErrMisalignedTime},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.appointments.Book(ctx, principal(3), timetable.ID, tt.at); !errors.Is(err, tt.want) {
				t.Errorf("Book error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := f.appointments.Book(ctx, principal(3), 404, at("09:00")); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("Book on missing timetable error = %v, want ErrTimetableNotFound", err)
	}
}

func TestAppointmentUsecase_ConcurrentBookingHasOneWinner(t *testing.T) {
	f := newTimetableFixture(t)
	ctx := context.Background()
	timetable := f.create(t, "09:00", "10:00")

	const racers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		won      int
		occupied int
	)
	for i := range racers {
		wg.Add(1)
		go func(patientID int64) {
			defer wg.Done()
			_, err := f.appointments.Book(ctx, principal(patientID), timetable.ID, at("09:00"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case errors.Is(err, ErrSlotOccupied):
				occupied++
			default:
				t.Errorf("Book: %v", err)
			}
		}(int64(100 + i))
	}
	wg.Wait()

	if won != 1 || occupied != racers-1 {
		t.Errorf("won = %d, occupied = %d; want 1 and %d", won, occupied, racers-1)
	}
}

func TestAppointmentUsecase_CancelPermissions(t *testing.T) {
	f := newTimetableFixture(t)
	ctx := context.Background()
	timetable := f.create(t, "09:00", "10:00")

	appointment, err := f.appointments.Book(ctx, principal(3), timetable.ID, at("09:00"))
	if err != nil {
		t.Fatal(err)
	}

	if err := f.appointments.Cancel(ctx, principal(4), appointment.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Cancel by stranger error = %v, want ErrForbidden", err)
	}
	if err := f.appointments.Cancel(ctx, principal(5, entity.RoleDoctor), appointment.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("Cancel by doctor error = %v, want ErrForbidden", err)
	}
	if err := f.appointments.Cancel(ctx, principal(6, entity.RoleManager), appointment.ID); err != nil {
		t.Errorf("Cancel by manager: %v", err)
	}
	if err := f.appointments.Cancel(ctx, principal(3), appointment.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("Cancel twice error = %v, want ErrAppointmentNotFound", err)
	}

	free, err := f.appointments.FreeSlots(ctx, timetable.ID)
	if err != nil {
		t.Fatal(err)
	}
	assertTimes(t, free, at("09:00"), at("09:30"), at("10:00"))
}

func TestTimetableUsecase_DeleteCascadesAppointments(t *testing.T) {
	f := newTimetableFixture(t)
	ctx := context.Background()
	timetable := f.create(t, "09:00", "10:00")
	f.create(t, "13:00", "14:00")

	appointment, err := f.appointments.Book(ctx, principal(3), timetable.ID, at("09:00"))
	if err != nil {
		t.Fatal(err)
	}

	if err := f.timetables.Delete(ctx, timetable.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.timetables.Delete(ctx, timetable.ID); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("second Delete error = %v, want ErrTimetableNotFound", err)
	}
	if err := f.appointments.Cancel(ctx, principal(3), appointment.ID); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("appointment survived its timetable: %v", err)
	}

	remaining, err := f.timetables.Find(ctx, TimetableQuery{DoctorID: 2, From: at("00:00"), To: at("23:30")})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || !remaining[0].From.Equal(at("13:00")) {
		t.Errorf("remaining = %+v, want the 13:00 timetable", remaining)
	}

	n, err := f.timetables.DeleteWhere(ctx, TimetableQuery{DoctorID: 2})
	if err != nil || n != 1 {
		t.Errorf("DeleteWhere = %d, %v; want 1, nil", n, err)
	}
}

func assertTimes(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
