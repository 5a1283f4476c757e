package usecase

import (
	"context"
	"errors"

	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"
	"clinic-services/pkg/pagination"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHospitalNotFound = errors.New("hospital not found")
)

type HospitalUsecase interface {
	List(ctx context.Context, page pagination.Params) (*pagination.Page[dto.HospitalResponse], error)
	Get(ctx context.Context, id int64) (*dto.HospitalResponse, error)
	Rooms(ctx context.Context, id int64) ([]string, error)
	Create(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	Update(ctx context.Context, id int64, req *dto.HospitalRequest) (*dto.HospitalResponse, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	RoomExists(ctx context.Context, id int64, room string) (bool, error)
}

type hospitalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
}

func NewHospitalUsecase(db *gorm.DB, log *logrus.Logger, hospitalRepo repository.HospitalRepository) HospitalUsecase {
	return &hospitalUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
	}
}

func (u *hospitalUsecase) List(ctx context.Context, page pagination.Params) (*pagination.Page[dto.HospitalResponse], error) {
	hospitals, total, err := u.hospitalRepo.FindActive(u.db.WithContext(ctx), page.Count, page.From)
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, err
	}
	return pagination.NewPage(converter.HospitalsToResponses(hospitals), total), nil
}

func (u *hospitalUsecase) find(ctx context.Context, id int64) (*entity.Hospital, error) {
	hospital, err := u.hospitalRepo.FindActiveByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital %d: %+v", id, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}
	return hospital, nil
}

func (u *hospitalUsecase) Get(ctx context.Context, id int64) (*dto.HospitalResponse, error) {
	hospital, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Rooms(ctx context.Context, id int64) ([]string, error) {
	hospital, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.HospitalToResponse(hospital).Rooms, nil
}

func (u *hospitalUsecase) Create(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	hospital := &entity.Hospital{
		Name:         req.Name,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
		Rooms:        uniqueRooms(req.Rooms),
	}

	if err := u.hospitalRepo.Create(u.db.WithContext(ctx), hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, err
	}

	u.log.Infof("Hospital %d created", hospital.ID)
	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Update(ctx context.Context, id int64, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	var hospital *entity.Hospital
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		hospital, err = u.hospitalRepo.FindActiveByID(tx, id)
		if err != nil {
			return err
		}
		if hospital == nil {
			return ErrHospitalNotFound
		}

		hospital.Name = req.Name
		hospital.Address = req.Address
		hospital.ContactPhone = req.ContactPhone
		hospital.Rooms = uniqueRooms(req.Rooms)
		return u.hospitalRepo.Update(tx, hospital)
	})
	if err != nil {
		if !errors.Is(err, ErrHospitalNotFound) {
			u.log.Warnf("Failed to update hospital %d: %+v", id, err)
		}
		return nil, err
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *hospitalUsecase) Delete(ctx context.Context, id int64) error {
	affected, err := u.hospitalRepo.SoftDelete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete hospital %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrHospitalNotFound
	}

	u.log.Infof("Hospital %d deleted", id)
	return nil
}

func (u *hospitalUsecase) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := u.hospitalRepo.ExistsActive(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to check hospital existence: %+v", err)
		return false, err
	}
	return exists, nil
}

func (u *hospitalUsecase) RoomExists(ctx context.Context, id int64, room string) (bool, error) {
	hospital, err := u.find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrHospitalNotFound) {
			return false, nil
		}
		return false, err
	}
	return hospital.HasRoom(room), nil
}

// uniqueRooms keeps the first occurrence of every room name, preserving order.
func uniqueRooms(rooms []string) entity.StringList {
	seen := make(map[string]struct{}, len(rooms))
	out := make(entity.StringList, 0, len(rooms))
	for _, r := range rooms {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
