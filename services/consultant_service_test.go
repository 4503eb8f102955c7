package services

import (
	"testing"

	"consulting-platform-server/models"
)

func TestValidateConsultantTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ConsultantStatus
		to      models.ConsultantStatus
		wantErr bool
	}{
		{"pending to approved", models.ConsultantStatusPending, models.ConsultantStatusApproved, false},
		{"pending to rejected", models.ConsultantStatusPending, models.ConsultantStatusRejected, false},
		{"pending to suspended", models.ConsultantStatusPending, models.ConsultantStatusSuspended, true},
		{"approved to suspended", models.ConsultantStatusApproved, models.ConsultantStatusSuspended, false},
		{"approved to rejected", models.ConsultantStatusApproved, models.ConsultantStatusRejected, true},
		{"rejected has no status transitions", models.ConsultantStatusRejected, models.ConsultantStatusPending, true},
		{"suspended is terminal", models.ConsultantStatusSuspended, models.ConsultantStatusApproved, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConsultantTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConsultantTransition(%q, %q) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}
