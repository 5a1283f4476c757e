package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"clinic-services/config"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/repository"
	"clinic-services/pkg/pagination"
)

func TestHospitalUsecase_SoftDelete(t *testing.T) {
	db := openDB(t, config.ServiceHospital)
	hospitals := NewHospitalUsecase(db, quietLogger(), repository.NewHospitalRepository())
	ctx := context.Background()

	created, err := hospitals.Create(ctx, &dto.HospitalRequest{
		Name:  "City Clinic",
		Rooms: []string{"101", "102", "101"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !reflect.DeepEqual(created.Rooms, []string{"101", "102"}) {
		t.Errorf("rooms = %v, want [101 102]", created.Rooms)
	}

	if ok, _ := hospitals.RoomExists(ctx, created.ID, "102"); !ok {
		t.Error("RoomExists(102) = false")
	}
	if ok, _ := hospitals.RoomExists(ctx, created.ID, "999"); ok {
		t.Error("RoomExists(999) = true")
	}

	if err := hospitals.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if ok, err := hospitals.Exists(ctx, created.ID); err != nil || ok {
		t.Errorf("Exists after delete = %v, %v", ok, err)
	}
	if ok, err := hospitals.RoomExists(ctx, created.ID, "101"); err != nil || ok {
		t.Errorf("RoomExists after delete = %v, %v", ok, err)
	}
	if _, err := hospitals.Get(ctx, created.ID); !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("Get after delete error = %v, want ErrHospitalNotFound", err)
	}
	page, err := hospitals.List(ctx, pagination.Params{Count: pagination.DefaultCount})
	if err != nil || page.Count != 0 || len(page.Results) != 0 {
		t.Errorf("List after delete = %+v, %v", page, err)
	}
	if err := hospitals.Delete(ctx, created.ID); !errors.Is(err, ErrHospitalNotFound) {
		t.Errorf("second Delete error = %v, want ErrHospitalNotFound", err)
	}
}
