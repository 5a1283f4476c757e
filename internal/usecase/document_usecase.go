package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"clinic-services/internal/client"
	"clinic-services/internal/converter"
	"clinic-services/internal/delivery/dto"
	"clinic-services/internal/domain/entity"
	"clinic-services/internal/domain/repository"
	"clinic-services/internal/permission"
	"clinic-services/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type DocumentUsecase interface {
	Create(ctx context.Context, req *dto.DocumentRequest) (*dto.DocumentResponse, error)
	Get(ctx context.Context, caller *permission.Principal, id int64) (*dto.DocumentResponse, error)
	Update(ctx context.Context, caller *permission.Principal, id int64, req *dto.DocumentRequest) (*dto.DocumentResponse, error)
	ListByPatient(ctx context.Context, caller *permission.Principal, patientID int64) ([]dto.DocumentResponse, error)
}

type documentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	documentRepo repository.DocumentRepository
	checker      client.EntityExistenceChecker
	indexService *service.DocumentIndexService
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	documentRepo repository.DocumentRepository,
	checker client.EntityExistenceChecker,
	indexService *service.DocumentIndexService,
) DocumentUsecase {
	return &documentUsecase{
		db:           db,
		log:          log,
		documentRepo: documentRepo,
		checker:      checker,
		indexService: indexService,
	}
}

func (u *documentUsecase) validate(ctx context.Context, req *dto.DocumentRequest) error {
	checks := []struct {
		what  string
		check func() (bool, error)
	}{
		{fmt.Sprintf("hospital %d", req.HospitalID), func() (bool, error) { return u.checker.HospitalExists(ctx, req.HospitalID) }},
		{fmt.Sprintf("room %q in hospital %d", req.Room, req.HospitalID), func() (bool, error) {
			return u.checker.HospitalRoomExists(ctx, req.HospitalID, req.Room)
		}},
		{fmt.Sprintf("doctor %d", req.DoctorID), func() (bool, error) { return u.checker.DoctorExists(ctx, req.DoctorID) }},
		{fmt.Sprintf("patient %d", req.PatientID), func() (bool, error) { return u.checker.UserExists(ctx, req.PatientID) }},
	}

	for _, c := range checks {
		ok, err := c.check()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidReference, c.what)
		}
	}
	return nil
}

func (u *documentUsecase) Create(ctx context.Context, req *dto.DocumentRequest) (*dto.DocumentResponse, error) {
	if err := u.validate(ctx, req); err != nil {
		return nil, err
	}

	document := &entity.Document{
		Date:       req.Date.UTC(),
		PatientID:  req.PatientID,
		HospitalID: req.HospitalID,
		DoctorID:   req.DoctorID,
		Room:       req.Room,
		Data:       req.Data,
	}
	if err := u.documentRepo.Create(u.db.WithContext(ctx), document); err != nil {
		u.log.Warnf("Failed to create document: %+v", err)
		return nil, err
	}

	u.indexService.Index(ctx, document)
	return converter.DocumentToResponse(document), nil
}

func (u *documentUsecase) find(ctx context.Context, id int64) (*entity.Document, error) {
	document, err := u.documentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find document %d: %+v", id, err)
		return nil, err
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}
	return document, nil
}

func (u *documentUsecase) Get(ctx context.Context, caller *permission.Principal, id int64) (*dto.DocumentResponse, error) {
	document, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanAccessDocument(caller, document.PatientID, http.MethodGet) {
		return nil, ErrForbidden
	}
	return converter.DocumentToResponse(document), nil
}

func (u *documentUsecase) Update(ctx context.Context, caller *permission.Principal, id int64, req *dto.DocumentRequest) (*dto.DocumentResponse, error) {
	document, err := u.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permission.CanAccessDocument(caller, document.PatientID, http.MethodPut) {
		return nil, ErrForbidden
	}
	if err := u.validate(ctx, req); err != nil {
		return nil, err
	}

	document.Date = req.Date.UTC()
	document.PatientID = req.PatientID
	document.HospitalID = req.HospitalID
	document.DoctorID = req.DoctorID
	document.Room = req.Room
	document.Data = req.Data
	if err := u.documentRepo.Update(u.db.WithContext(ctx), document); err != nil {
		u.log.Warnf("Failed to update document %d: %+v", id, err)
		return nil, err
	}

	u.indexService.Index(ctx, document)
	return converter.DocumentToResponse(document), nil
}

func (u *documentUsecase) ListByPatient(ctx context.Context, caller *permission.Principal, patientID int64) ([]dto.DocumentResponse, error) {
	if !permission.CanReadPatientHistory(caller, patientID) {
		return nil, ErrForbidden
	}

	documents, err := u.documentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list documents of patient %d: %+v", patientID, err)
		return nil, err
	}
	return converter.DocumentsToResponses(documents), nil
}
