package usecase

import (
	"context"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
)

// DocumentService manages flight document records. Documents are purely
// additive to the workflow; deletion is allowed without restriction.
type DocumentService struct {
	documentRepo repository.DocumentRepository
	flightRepo   repository.FlightRepository
	logger       logger.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(documentRepo repository.DocumentRepository, flightRepo repository.FlightRepository, logger logger.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		flightRepo:   flightRepo,
		logger:       logger,
	}
}

// AddDocument records document metadata for a flight.
func (s *DocumentService) AddDocument(ctx context.Context, actor entity.Actor, flightID string, doc *entity.Document) error {
	if err := actor.Authorize(entity.PermManageDocuments); err != nil {
		return err
	}

	flight, err := s.flightRepo.FindByID(ctx, flightID)
	if err != nil {
		return &entity.PersistenceError{Op: "read flight", Err: err}
	}
	if flight == nil {
		return &entity.NotFoundError{Entity: "flight", ID: flightID}
	}

	doc.FlightID = flightID
	doc.UploadedBy = actor.UserID
	doc.CreatedAt = time.Now()
	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return &entity.PersistenceError{Op: "write document", Err: err}
	}

	s.logger.Info("Document recorded", "flightId", flightID, "type", doc.Type, "file", doc.FileName)
	return nil
}

// ListDocuments returns the flight's document records.
func (s *DocumentService) ListDocuments(ctx context.Context, flightID string) ([]*entity.Document, error) {
	docs, err := s.documentRepo.FindByFlight(ctx, flightID)
	if err != nil {
		return nil, &entity.PersistenceError{Op: "list documents", Err: err}
	}
	return docs, nil
}

// DeleteDocument removes a document record.
func (s *DocumentService) DeleteDocument(ctx context.Context, actor entity.Actor, id string) error {
	if err := actor.Authorize(entity.PermManageDocuments); err != nil {
		return err
	}
	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return &entity.PersistenceError{Op: "delete document", Err: err}
	}
	return nil
}
