package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ferryflight-service/internal/domain/entity"
	"ferryflight-service/internal/domain/repository"
	"ferryflight-service/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}
func (l nopLogger) With(keysAndValues ...interface{}) logger.Logger {
	return l
}

type memFlightRepo struct {
	flights   map[string]*entity.FerryFlight
	findErr   error
	updateErr error
}

func newMemFlightRepo(flights ...*entity.FerryFlight) *memFlightRepo {
	r := &memFlightRepo{flights: make(map[string]*entity.FerryFlight)}
	for _, f := range flights {
		r.flights[f.ID] = f
	}
	return r
}

func (r *memFlightRepo) Create(ctx context.Context, flight *entity.FerryFlight) error {
	if flight.ID == "" {
		flight.ID = fmt.Sprintf("flight-%d", len(r.flights)+1)
	}
	r.flights[flight.ID] = flight
	return nil
}

func (r *memFlightRepo) FindByID(ctx context.Context, id string) (*entity.FerryFlight, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	flight, ok := r.flights[id]
	if !ok {
		return nil, nil
	}
	copied := *flight
	return &copied, nil
}

func (r *memFlightRepo) FindByOrganization(ctx context.Context, orgID string) ([]*entity.FerryFlight, error) {
	var out []*entity.FerryFlight
	for _, f := range r.flights {
		if f.OrganizationID == orgID {
			copied := *f
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memFlightRepo) UpdateStatus(ctx context.Context, id string, status entity.FlightStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	flight, ok := r.flights[id]
	if !ok {
		return fmt.Errorf("flight %s not found", id)
	}
	flight.Status = status
	flight.UpdatedAt = time.Now()
	return nil
}

func (r *memFlightRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	flight, ok := r.flights[id]
	if !ok {
		return fmt.Errorf("flight %s not found", id)
	}
	for name, value := range fields {
		switch name {
		case "originAirport":
			flight.OriginAirport = value.(string)
		case "destAirport":
			flight.DestAirport = value.(string)
		case "purpose":
			flight.Purpose = value.(string)
		case "pilotId":
			flight.PilotID = value.(string)
		case "mechanicId":
			flight.MechanicID = value.(string)
		case "status":
			flight.Status = value.(entity.FlightStatus)
		case "plannedDeparture":
			t := value.(time.Time)
			flight.PlannedDeparture = &t
		case "actualDeparture":
			t := value.(time.Time)
			flight.ActualDeparture = &t
		case "actualArrival":
			t := value.(time.Time)
			flight.ActualArrival = &t
		}
	}
	flight.UpdatedAt = time.Now()
	return nil
}

type memAuditRepo struct {
	entries   []*entity.AuditLog
	appendErr error
}

func (r *memAuditRepo) Append(ctx context.Context, entry *entity.AuditLog) (string, error) {
	if r.appendErr != nil {
		return "", r.appendErr
	}
	copied := *entry
	copied.ID = fmt.Sprintf("audit-%d", len(r.entries)+1)
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, &copied)
	return copied.ID, nil
}

func (r *memAuditRepo) FindByFlight(ctx context.Context, flightID string) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if e.FlightID == flightID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditRepo) FindByUser(ctx context.Context, userID string) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memAuditRepo) FindByAction(ctx context.Context, action string) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out, nil
}

type memSignoffRepo struct {
	signoffs []*entity.MechanicSignoff
}

func (r *memSignoffRepo) Save(ctx context.Context, signoff *entity.MechanicSignoff) error {
	copied := *signoff
	copied.ID = fmt.Sprintf("signoff-%d", len(r.signoffs)+1)
	r.signoffs = append(r.signoffs, &copied)
	return nil
}

func (r *memSignoffRepo) FindByFlight(ctx context.Context, flightID string) ([]*entity.MechanicSignoff, error) {
	var out []*entity.MechanicSignoff
	for i := len(r.signoffs) - 1; i >= 0; i-- {
		if r.signoffs[i].FlightID == flightID {
			out = append(out, r.signoffs[i])
		}
	}
	return out, nil
}

func (r *memSignoffRepo) CountByFlight(ctx context.Context, flightID string) (int64, error) {
	var count int64
	for _, s := range r.signoffs {
		if s.FlightID == flightID {
			count++
		}
	}
	return count, nil
}

type memDocumentRepo struct {
	docs []*entity.Document
}

func (r *memDocumentRepo) Save(ctx context.Context, doc *entity.Document) error {
	copied := *doc
	copied.ID = fmt.Sprintf("doc-%d", len(r.docs)+1)
	r.docs = append(r.docs, &copied)
	return nil
}

func (r *memDocumentRepo) FindByFlight(ctx context.Context, flightID string) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, d := range r.docs {
		if d.FlightID == flightID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDocumentRepo) Delete(ctx context.Context, id string) error {
	for i, d := range r.docs {
		if d.ID == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

type memPermitRepo struct {
	permits []*entity.FAAPermit
}

func (r *memPermitRepo) Create(ctx context.Context, permit *entity.FAAPermit) error {
	copied := *permit
	copied.ID = fmt.Sprintf("permit-%d", len(r.permits)+1)
	copied.CreatedAt = time.Now()
	r.permits = append(r.permits, &copied)
	permit.ID = copied.ID
	return nil
}

func (r *memPermitRepo) FindByID(ctx context.Context, id string) (*entity.FAAPermit, error) {
	for _, p := range r.permits {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memPermitRepo) FindLatestByFlight(ctx context.Context, flightID string) (*entity.FAAPermit, error) {
	for i := len(r.permits) - 1; i >= 0; i-- {
		if r.permits[i].FlightID == flightID {
			copied := *r.permits[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memPermitRepo) FindByPermitNumber(ctx context.Context, permitNumber string) (*entity.FAAPermit, error) {
	for _, p := range r.permits {
		if p.PermitNumber == permitNumber {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memPermitRepo) Update(ctx context.Context, permit *entity.FAAPermit) error {
	for i, p := range r.permits {
		if p.ID == permit.ID {
			copied := *permit
			copied.UpdatedAt = time.Now()
			r.permits[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("permit %s not found", permit.ID)
}

type memCorrespondenceRepo struct {
	messages []*entity.FAACorrespondence
}

func (r *memCorrespondenceRepo) Save(ctx context.Context, msg *entity.FAACorrespondence) error {
	copied := *msg
	copied.ID = fmt.Sprintf("corr-%d", len(r.messages)+1)
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *memCorrespondenceRepo) FindByMessageIDs(ctx context.Context, messageIDs []string) (map[string]*entity.FAACorrespondence, error) {
	out := make(map[string]*entity.FAACorrespondence)
	for _, m := range r.messages {
		for _, id := range messageIDs {
			if m.MessageID == id {
				out[id] = m
			}
		}
	}
	return out, nil
}

func (r *memCorrespondenceRepo) FindUnprocessed(ctx context.Context, limit int) ([]*entity.FAACorrespondence, error) {
	var out []*entity.FAACorrespondence
	for _, m := range r.messages {
		if m.ProcessStatus == entity.CorrespondencePending {
			out = append(out, m)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *memCorrespondenceRepo) GetLastReceived(ctx context.Context) (*entity.FAACorrespondence, error) {
	var latest *entity.FAACorrespondence
	for _, m := range r.messages {
		if latest == nil || m.ReceivedAt.After(latest.ReceivedAt) {
			latest = m
		}
	}
	return latest, nil
}

func (r *memCorrespondenceRepo) MarkProcessed(ctx context.Context, id, status, permitID, errorDetail string) error {
	for _, m := range r.messages {
		if m.ID == id {
			m.ProcessStatus = status
			m.PermitID = permitID
			m.ErrorDetail = errorDetail
			m.ProcessedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("correspondence %s not found", id)
}

type captureNotifier struct {
	events  []*repository.StatusChangeEvent
	sendErr error
}

func (n *captureNotifier) SendStatusChange(ctx context.Context, event *repository.StatusChangeEvent) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.events = append(n.events, event)
	return nil
}
