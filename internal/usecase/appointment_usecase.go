package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"
	"clinic-services/internal/permission"
	"clinic-services/pkg/slot"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrOutOfBounds         = errors.New("time is outside the timetable window")
	ErrSlotOccupied        = errors.New("appointment slot is already taken")
)

type AppointmentUsecase interface {
	// FreeSlots lists the instants of a timetable that nobody has booked yet.
	FreeSlots(ctx context.Context, timetableID int64) ([]time.Time, error)
	Book(ctx context.Context, caller *permission.Principal, timetableID int64, at time.Time) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, caller *permission.Principal, appointmentID int64) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	timetableRepo   repository.TimetableRepository
	appointmentRepo repository.AppointmentRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timetableRepo repository.TimetableRepository,
	appointmentRepo repository.AppointmentRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		timetableRepo:   timetableRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *appointmentUsecase) findTimetable(ctx context.Context, id int64) (*entity.Timetable, error) {
	timetable, err := u.timetableRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find timetable %d: %+v", id, err)
		return nil, err
	}
	if timetable == nil {
		return nil, ErrTimetableNotFound
	}
	return timetable, nil
}

func (u *appointmentUsecase) FreeSlots(ctx context.Context, timetableID int64) ([]time.Time, error) {
	timetable, err := u.findTimetable(ctx, timetableID)
	if err != nil {
		return nil, err
	}

	// Read on every call: bookings change concurrently.
	booked, err := u.appointmentRepo.BookedTimes(u.db.WithContext(ctx), timetableID)
	if err != nil {
		u.log.Warnf("Failed to load appointments of timetable %d: %+v", timetableID, err)
		return nil, err
	}

	taken := make(map[int64]struct{}, len(booked))
	for _, t := range booked {
		taken[t.Unix()] = struct{}{}
	}

	free := make([]time.Time, 0, slot.Count(timetable.From, timetable.To))
	for t := range timetable.Slots() {
		if _, ok := taken[t.Unix()]; !ok {
			free = append(free, t.UTC())
		}
	}
	return free, nil
}

// Book inserts the appointment and lets the (timetable_id, time) unique index
// pick the winner when two requests race for the same slot.
func (u *appointmentUsecase) Book(ctx context.Context, caller *permission.Principal, timetableID int64, at time.Time) (*dto.AppointmentResponse, error) {
	timetable, err := u.findTimetable(ctx, timetableID)
	if err != nil {
		return nil, err
	}

	at = at.UTC()
	if !timetable.Contains(at) {
		return nil, ErrOutOfBounds
	}
	if !slot.Aligned(at) {
		return nil, ErrMisalignedTime
	}

	appointment := &entity.Appointment{
		TimetableID: timetable.ID,
		PatientID:   caller.ID,
		Time:        at,
	}
	if err := u.appointmentRepo.Create(u.db.WithContext(ctx), appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrSlotOccupied
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment %d booked on timetable %d at %s by %d", appointment.ID, timetable.ID, at.Format(time.RFC3339), caller.ID)
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, caller *permission.Principal, appointmentID int64) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if !permission.CanCancelAppointment(caller, appointment.PatientID) {
			return ErrForbidden
		}

		if _, err := u.appointmentRepo.Delete(tx, appointmentID); err != nil {
			u.log.Warnf("Failed to delete appointment %d: %+v", appointmentID, err)
			return err
		}
		u.log.Infof("Appointment %d cancelled by %d", appointmentID, caller.ID)
		return nil
	})
}
