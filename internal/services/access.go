package services

import (
	"strings"

	"eventhive/internal/domain"
)

// EvaluateAccess decides whether a user may register for a private event.
// Both gates apply independently when configured: a configured access code
// must match exactly, and a non-empty domain allow-list must contain the
// part of the user's email after '@'. A private event with neither gate
// configured admits everyone; the private flag alone only hides the event
// from anonymous listings.
func EvaluateAccess(ac domain.AccessControl, providedCode, userEmail string) error {
	if ac.AccessCode != "" && providedCode != ac.AccessCode {
		return domain.ErrInvalidAccessCode
	}
	if len(ac.AllowedDomains) > 0 {
		at := strings.LastIndex(userEmail, "@")
		if at < 0 {
			return domain.ErrDomainNotAllowed
		}
		emailDomain := userEmail[at+1:]
		allowed := false
		for _, d := range ac.AllowedDomains {
			if strings.EqualFold(d, emailDomain) {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.ErrDomainNotAllowed
		}
	}
	return nil
}
