package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-services/internal/client"
	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"
	"clinic-services/pkg/slot"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrTimetableNotFound = errors.New("timetable not found")
	ErrMisalignedTime    = errors.New("time must be on a :00 or :30 boundary")
	ErrInvertedWindow    = errors.New("window must end after it starts")
	ErrWindowTooLong     = errors.New("window must not exceed 12 hours")
)

// TimetableQuery selects timetables of one doctor, hospital or hospital room
// inside [From, To].
type TimetableQuery struct {
	DoctorID   int64
	HospitalID int64
	Room       string
	From       time.Time
	To         time.Time
}

type TimetableUsecase interface {
	Create(ctx context.Context, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
	Update(ctx context.Context, id int64, req *dto.TimetableRequest) (*dto.TimetableResponse, error)
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, q TimetableQuery) ([]dto.TimetableResponse, error)
	DeleteWhere(ctx context.Context, q TimetableQuery) (int64, error)
}

type timetableUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	timetableRepo repository.TimetableRepository
	checker       client.EntityExistenceChecker
}

func NewTimetableUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timetableRepo repository.TimetableRepository,
	checker client.EntityExistenceChecker,
) TimetableUsecase {
	return &timetableUsecase{
		db:            db,
		log:           log,
		timetableRepo: timetableRepo,
		checker:       checker,
	}
}

// ValidateWindow checks that [from, to] is a non-empty half-hour aligned
// window of at most 12 hours.
func ValidateWindow(from, to time.Time) error {
	if !slot.Aligned(from) || !slot.Aligned(to) {
		return ErrMisalignedTime
	}
	if !to.After(from) {
		return ErrInvertedWindow
	}
	if to.Sub(from) > slot.MaxWindow {
		return ErrWindowTooLong
	}
	return nil
}

// validate checks the window and every cross-service reference. Dependency
// outages are returned unchanged so callers can tell them from bad input.
func (u *timetableUsecase) validate(ctx context.Context, req *dto.TimetableRequest) error {
	if err := ValidateWindow(req.From.UTC(), req.To.UTC()); err != nil {
		return err
	}

	ok, err := u.checker.HospitalExists(ctx, req.HospitalID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: hospital %d", ErrInvalidReference, req.HospitalID)
	}

	ok, err = u.checker.HospitalRoomExists(ctx, req.HospitalID, req.Room)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: room %q in hospital %d", ErrInvalidReference, req.Room, req.HospitalID)
	}

	ok, err = u.checker.DoctorExists(ctx, req.DoctorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: doctor %d", ErrInvalidReference, req.DoctorID)
	}

	return nil
}

func (u *timetableUsecase) Create(ctx context.Context, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	if err := u.validate(ctx, req); err != nil {
		return nil, err
	}

	timetable := &entity.Timetable{
		HospitalID: req.HospitalID,
		DoctorID:   req.DoctorID,
		From:       req.From.UTC(),
		To:         req.To.UTC(),
		Room:       req.Room,
	}
	if err := u.timetableRepo.Create(u.db.WithContext(ctx), timetable); err != nil {
		u.log.Warnf("Failed to create timetable: %+v", err)
		return nil, err
	}

	u.log.Infof("Timetable %d created for doctor %d", timetable.ID, timetable.DoctorID)
	return converter.TimetableToResponse(timetable), nil
}

func (u *timetableUsecase) Update(ctx context.Context, id int64, req *dto.TimetableRequest) (*dto.TimetableResponse, error) {
	if err := u.validate(ctx, req); err != nil {
		return nil, err
	}

	var timetable *entity.Timetable
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		timetable, err = u.timetableRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if timetable == nil {
			return ErrTimetableNotFound
		}

		timetable.HospitalID = req.HospitalID
		timetable.DoctorID = req.DoctorID
		timetable.From = req.From.UTC()
		timetable.To = req.To.UTC()
		timetable.Room = req.Room
		return u.timetableRepo.Update(tx, timetable)
	})
	if err != nil {
		if !errors.Is(err, ErrTimetableNotFound) {
			u.log.Warnf("Failed to update timetable %d: %+v", id, err)
		}
		return nil, err
	}

	return converter.TimetableToResponse(timetable), nil
}

func (u *timetableUsecase) Delete(ctx context.Context, id int64) error {
	affected, err := u.timetableRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete timetable %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrTimetableNotFound
	}
	return nil
}

func (u *timetableUsecase) Find(ctx context.Context, q TimetableQuery) ([]dto.TimetableResponse, error) {
	timetables, err := u.timetableRepo.Find(u.db.WithContext(ctx), q.filter())
	if err != nil {
		u.log.Warnf("Failed to find timetables: %+v", err)
		return nil, err
	}
	return converter.TimetablesToResponses(timetables), nil
}

func (u *timetableUsecase) DeleteWhere(ctx context.Context, q TimetableQuery) (int64, error) {
	affected, err := u.timetableRepo.DeleteWhere(u.db.WithContext(ctx), q.filter())
	if err != nil {
		u.log.Warnf("Failed to delete timetables: %+v", err)
		return 0, err
	}
	u.log.Infof("Deleted %d timetables", affected)
	return affected, nil
}

func (q TimetableQuery) filter() repository.TimetableFilter {
	f := repository.TimetableFilter{
		HospitalID: q.HospitalID,
		DoctorID:   q.DoctorID,
		Room:       q.Room,
	}
	if !q.From.IsZero() {
		f.From = q.From.UTC()
	}
	if !q.To.IsZero() {
		f.To = q.To.UTC()
	}
	return f
}
