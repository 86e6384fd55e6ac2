package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusChange(t *testing.T) {
	tests := []struct {
		name     string
		log      AuditLog
		wantFrom FlightStatus
		wantTo   FlightStatus
		wantOK   bool
	}{
		{
			name: "status keyed change",
			log: AuditLog{
				Action: ActionStatusChanged,
				Changes: map[string]FieldChange{
					"status": {From: "draft", To: "inspection_pending"},
				},
			},
			wantFrom: StatusDraft,
			wantTo:   StatusInspectionPending,
			wantOK:   true,
		},
		{
			name: "legacy single change under another key",
			log: AuditLog{
				Action: ActionStatusChanged,
				Changes: map[string]FieldChange{
					"state": {From: "faa_submitted", To: "permit_issued"},
				},
			},
			wantFrom: StatusFAASubmitted,
			wantTo:   StatusPermitIssued,
			wantOK:   true,
		},
		{
			name: "status change buried in a field edit",
			log: AuditLog{
				Action: ActionStatusChanged,
				Changes: map[string]FieldChange{
					"status":  {From: "scheduled", To: "in_progress"},
					"pilotId": {From: "p1", To: "p2"},
				},
			},
			wantFrom: StatusScheduled,
			wantTo:   StatusInProgress,
			wantOK:   true,
		},
		{
			name: "plain field edit is not a status change",
			log: AuditLog{
				Action: ActionFlightUpdated,
				Changes: map[string]FieldChange{
					"purpose": {From: "a", To: "b"},
				},
			},
			wantOK: false,
		},
		{
			name:   "nil changes",
			log:    AuditLog{Action: ActionStatusChanged},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, ok := tt.log.StatusChange()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantFrom, from)
				assert.Equal(t, tt.wantTo, to)
			}
		})
	}
}
