package services

import (
	"errors"
	"testing"

	"eventhive/internal/domain"
)

func TestEvaluateAccess(t *testing.T) {
	tests := []struct {
		name      string
		ac        domain.AccessControl
		code      string
		email     string
		wantErr   error
	}{
		{
			name:  "no gates configured",
			ac:    domain.AccessControl{IsPrivate: true},
			email: "a@example.com",
		},
		{
			name:    "code required and missing",
			ac:      domain.AccessControl{IsPrivate: true, AccessCode: "secret"},
			email:   "a@example.com",
			wantErr: domain.ErrInvalidAccessCode,
		},
		{
			name:    "code mismatch",
			ac:      domain.AccessControl{IsPrivate: true, AccessCode: "secret"},
			code:    "guess",
			email:   "a@example.com",
			wantErr: domain.ErrInvalidAccessCode,
		},
		{
			name:    "code is case sensitive",
			ac:      domain.AccessControl{IsPrivate: true, AccessCode: "secret"},
			code:    "SECRET",
			email:   "a@example.com",
			wantErr: domain.ErrInvalidAccessCode,
		},
		{
			name:  "code match",
			ac:    domain.AccessControl{IsPrivate: true, AccessCode: "secret"},
			code:  "secret",
			email: "a@example.com",
		},
		{
			name:    "domain not in allow list",
			ac:      domain.AccessControl{IsPrivate: true, AllowedDomains: []string{"corp.com", "partner.io"}},
			email:   "a@example.com",
			wantErr: domain.ErrDomainNotAllowed,
		},
		{
			name:  "domain in allow list",
			ac:    domain.AccessControl{IsPrivate: true, AllowedDomains: []string{"corp.com", "partner.io"}},
			email: "a@partner.io",
		},
		{
			name:  "domain match is case insensitive",
			ac:    domain.AccessControl{IsPrivate: true, AllowedDomains: []string{"corp.com"}},
			email: "a@Corp.COM",
		},
		{
			name:    "email without at sign",
			ac:      domain.AccessControl{IsPrivate: true, AllowedDomains: []string{"corp.com"}},
			email:   "not-an-email",
			wantErr: domain.ErrDomainNotAllowed,
		},
		{
			name:  "domain taken after last at sign",
			ac:    domain.AccessControl{IsPrivate: true, AllowedDomains: []string{"corp.com"}},
			email: "weird@name@corp.com",
		},
		{
			name:    "both gates, code wrong wins first",
			ac:      domain.AccessControl{IsPrivate: true, AccessCode: "secret", AllowedDomains: []string{"corp.com"}},
			code:    "wrong",
			email:   "a@corp.com",
			wantErr: domain.ErrInvalidAccessCode,
		},
		{
			name:    "both gates, code right but domain wrong",
			ac:      domain.AccessControl{IsPrivate: true, AccessCode: "secret", AllowedDomains: []string{"corp.com"}},
			code:    "secret",
			email:   "a@example.com",
			wantErr: domain.ErrDomainNotAllowed,
		},
		{
			name:  "both gates pass",
			ac:    domain.AccessControl{IsPrivate: true, AccessCode: "secret", AllowedDomains: []string{"corp.com"}},
			code:  "secret",
			email: "a@corp.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EvaluateAccess(tt.ac, tt.code, tt.email)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
