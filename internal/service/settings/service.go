package settings

import (
	"context"
	"strings"
	"sync"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

// Service keeps the outgoing email settings in memory. Nothing is sent.
type Service struct {
	mu        sync.RWMutex
	email     model.EmailSettings
	validator validator.Validator
	auditor   *audit.Service
}

func NewService(initial model.EmailSettings, v validator.Validator, auditor *audit.Service) *Service {
	return &Service{email: initial, validator: v, auditor: auditor}
}

// Email returns the current settings with the password masked.
func (s *Service) Email(ctx context.Context) model.EmailSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email.Masked()
}

// UpdateEmail replaces the settings when every field is valid; otherwise the
// previous settings stay in place.
func (s *Service) UpdateEmail(ctx context.Context, req model.EmailSettings) (model.EmailSettings, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.SMTPServer = strings.TrimSpace(req.SMTPServer)
	req.SMTPPort = strings.TrimSpace(req.SMTPPort)
	if err := s.validator.Validate(req).Err(); err != nil {
		return model.EmailSettings{}, err
	}

	s.mu.Lock()
	s.email = req
	s.mu.Unlock()

	s.auditor.Log(ctx, model.AuditActionUpdate, model.AuditEntitySettings, "email", &audit.LogOptions{
		Changes: req.Masked(),
	})
	return req.Masked(), nil
}
