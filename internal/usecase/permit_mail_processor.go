package usecase

import (
	"context"
	"regexp"
	"strings"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
	"ferryflight-service/pkg/metrics"
)

// Permit numbers issued by FSDO offices look like "SFP-2025-00123".
var permitNumberPattern = regexp.MustCompile(`(?i)\bSFP-\d{4}-\d{3,6}\b`)

// PermitMailProcessor matches inbound FAA correspondence to permits and
// records questions and decisions on them. Flight-level status changes stay
// with staff; the processor only annotates the permit.
type PermitMailProcessor struct {
	correspondenceRepo repository.CorrespondenceRepository
	permitRepo         repository.PermitRepository
	permitService      *PermitService
	logger             logger.Logger
	metrics            *metrics.Metrics
}

// NewPermitMailProcessor creates a new permit mail processor
func NewPermitMailProcessor(
	correspondenceRepo repository.CorrespondenceRepository,
	permitRepo repository.PermitRepository,
	permitService *PermitService,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *PermitMailProcessor {
	return &PermitMailProcessor{
		correspondenceRepo: correspondenceRepo,
		permitRepo:         permitRepo,
		permitService:      permitService,
		logger:             logger,
		metrics:            metrics,
	}
}

// ProcessPending walks unprocessed correspondence oldest first.
func (p *PermitMailProcessor) ProcessPending(ctx context.Context) error {
	messages, err := p.correspondenceRepo.FindUnprocessed(ctx, 100)
	if err != nil {
		p.logger.Error("Failed to get unprocessed correspondence", "error", err)
		return err
	}

	p.logger.Info("Found unprocessed FAA correspondence", "count", len(messages))

	for _, msg := range messages {
		if err := p.processMessage(ctx, msg); err != nil {
			p.logger.Error("Failed to process correspondence", "messageId", msg.MessageID, "error", err)
			// Continue with the next message
		}
	}

	return nil
}

func (p *PermitMailProcessor) processMessage(ctx context.Context, msg *entity.FAACorrespondence) error {
	permitNumber := permitNumberPattern.FindString(msg.Subject)
	if permitNumber == "" {
		permitNumber = permitNumberPattern.FindString(msg.Body)
	}

	if permitNumber == "" {
		p.logger.Warn("No permit number in correspondence", "messageId", msg.MessageID, "subject", msg.Subject)
		return p.correspondenceRepo.MarkProcessed(ctx, msg.ID, entity.CorrespondenceUnmatched, "", "no permit number found")
	}

	permit, err := p.permitRepo.FindByPermitNumber(ctx, strings.ToUpper(permitNumber))
	if err != nil {
		return p.correspondenceRepo.MarkProcessed(ctx, msg.ID, entity.CorrespondenceFailed, "", err.Error())
	}
	if permit == nil {
		p.logger.Warn("Correspondence references unknown permit", "messageId", msg.MessageID, "permitNumber", permitNumber)
		return p.correspondenceRepo.MarkProcessed(ctx, msg.ID, entity.CorrespondenceUnmatched, "", "permit number not on file")
	}

	// Questions from the FAA land on the permit for staff to answer; the
	// flight's own faa_questions transition stays a staff action.
	if err := p.permitService.RecordFAAExchange(ctx, permit.ID, msg.Body, ""); err != nil {
		return p.correspondenceRepo.MarkProcessed(ctx, msg.ID, entity.CorrespondenceFailed, permit.ID, err.Error())
	}

	if p.metrics != nil {
		p.metrics.FAAMessagesMatched.Inc()
	}
	p.logger.Info("Correspondence matched to permit",
		"messageId", msg.MessageID,
		"permitId", permit.ID,
		"permitNumber", permitNumber)

	return p.correspondenceRepo.MarkProcessed(ctx, msg.ID, entity.CorrespondenceMatched, permit.ID, "")
}
