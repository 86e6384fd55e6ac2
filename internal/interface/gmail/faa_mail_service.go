package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
	"ferryflight-service/pkg/metrics"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// FAAMailService polls the permit mailbox for FSDO/MIDO correspondence and
// stores new messages for the permit mail processor.
type FAAMailService struct {
	gmailService       *gmail.Service
	correspondenceRepo repository.CorrespondenceRepository
	logger             logger.Logger
	metrics            *metrics.Metrics
	pollInterval       time.Duration
}

// NewFAAMailService creates a new FAA mail service
func NewFAAMailService(ctx context.Context, tokenSource oauth2.TokenSource, correspondenceRepo repository.CorrespondenceRepository, logger logger.Logger, metrics *metrics.Metrics, pollInterval time.Duration) (*FAAMailService, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &FAAMailService{
		gmailService:       service,
		correspondenceRepo: correspondenceRepo,
		logger:             logger,
		metrics:            metrics,
		pollInterval:       pollInterval,
	}, nil
}

// FetchMessages fetches new mailbox messages since the last stored one
func (s *FAAMailService) FetchMessages(ctx context.Context) error {
	last, _ := s.correspondenceRepo.GetLastReceived(ctx)

	var fetchFrom time.Time
	var hasLast bool
	if last != nil && !last.ReceivedAt.IsZero() {
		fetchFrom = last.ReceivedAt
		hasLast = true
	} else {
		fetchFrom = time.Now().AddDate(0, -1, 0)
	}

	queryDate := fetchFrom
	if hasLast {
		// Go back 3 days to catch anything missed between polls
		queryDate = fetchFrom.AddDate(0, 0, -3)
	}

	query := fmt.Sprintf("after:%s", queryDate.Format("2006/01/02"))
	s.logger.Info("Querying permit mailbox", "query", query)

	resp, err := s.gmailService.Users.Messages.List("me").Q(query).Do()
	if err != nil {
		s.logger.Error("Failed to list messages", "error", err)
		return err
	}

	if len(resp.Messages) == 0 {
		s.logger.Info("No new messages found")
		return nil
	}

	messageIDs := make([]string, len(resp.Messages))
	for i, msg := range resp.Messages {
		messageIDs[i] = msg.Id
	}

	existing, err := s.correspondenceRepo.FindByMessageIDs(ctx, messageIDs)
	if err != nil {
		s.logger.Error("Failed to batch check existing messages", "error", err)
		existing = make(map[string]*entity.FAACorrespondence)
	}

	newCount := 0
	for _, msg := range resp.Messages {
		if _, ok := existing[msg.Id]; ok {
			continue
		}

		fullMsg, err := s.gmailService.Users.Messages.Get("me", msg.Id).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "messageId", msg.Id, "error", err)
			continue
		}

		messageTime := time.Unix(0, fullMsg.InternalDate*int64(time.Millisecond))
		if hasLast && !messageTime.After(fetchFrom) {
			continue
		}

		correspondence := s.convertMessage(fullMsg)
		if !s.isFAASender(correspondence.From) {
			s.logger.Debug("Skipping non-FAA sender", "from", correspondence.From)
			continue
		}

		if err := s.correspondenceRepo.Save(ctx, correspondence); err != nil {
			s.logger.Error("Failed to save correspondence", "messageId", msg.Id, "error", err)
			continue
		}

		if s.metrics != nil {
			s.metrics.FAAMessagesFetched.Inc()
		}
		newCount++
	}

	s.logger.Info("Mailbox fetch complete", "total", len(resp.Messages), "new", newCount)
	return nil
}

// StartPolling fetches on an interval until the context is cancelled
func (s *FAAMailService) StartPolling(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("FAA mail polling stopped")
			return
		case <-ticker.C:
			if err := s.FetchMessages(ctx); err != nil {
				s.logger.Error("Mailbox fetch failed", "error", err)
				if s.metrics != nil {
					s.metrics.Errors.WithLabelValues("faa_mail_fetch").Inc()
				}
			}
		}
	}
}

// isFAASender keeps the intake to government senders; everything else in
// the mailbox is ignored.
func (s *FAAMailService) isFAASender(from string) bool {
	return strings.Contains(strings.ToLower(from), "faa.gov")
}

func (s *FAAMailService) convertMessage(msg *gmail.Message) *entity.FAACorrespondence {
	correspondence := &entity.FAACorrespondence{
		MessageID:     msg.Id,
		ReceivedAt:    time.Unix(0, msg.InternalDate*int64(time.Millisecond)),
		ProcessStatus: entity.CorrespondencePending,
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			correspondence.From = header.Value
		case "Subject":
			correspondence.Subject = header.Value
		}
	}

	correspondence.Body = extractBody(msg.Payload)
	return correspondence
}

func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}
	if payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return string(data)
		}
	}
	for _, part := range payload.Parts {
		if part.MimeType == "text/plain" {
			if body := extractBody(part); body != "" {
				return body
			}
		}
	}
	for _, part := range payload.Parts {
		if body := extractBody(part); body != "" {
			return body
		}
	}
	return ""
}
