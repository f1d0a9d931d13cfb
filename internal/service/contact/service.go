package contact

import (
	"context"
	"strings"

	"github.com/jwalitptl/clinic-dashboard/internal/model"
	"github.com/jwalitptl/clinic-dashboard/internal/repository"
	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/pkg/metrics"
	"github.com/jwalitptl/clinic-dashboard/pkg/search"
	"github.com/jwalitptl/clinic-dashboard/pkg/validator"
)

const typeAll = "all"

type Service struct {
	repo      repository.ContactRepository
	validator validator.Validator
	auditor   *audit.Service
	metrics   *metrics.Metrics
}

func NewService(repo repository.ContactRepository, v validator.Validator, auditor *audit.Service, m *metrics.Metrics) *Service {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Service{repo: repo, validator: v, auditor: auditor, metrics: m}
}

func (s *Service) AddContact(ctx context.Context, req model.CreateContactRequest) (model.Contact, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req).Err(); err != nil {
		return model.Contact{}, err
	}

	typ := model.ContactType(req.Type)
	if typ == "" {
		typ = model.ContactTypeOther
	}
	c := s.repo.Add(model.Contact{
		Name:  req.Name,
		Email: req.Email,
		Phone: strings.TrimSpace(req.Phone),
		Type:  typ,
	})

	s.auditor.Log(ctx, model.AuditActionCreate, model.AuditEntityContact, c.ID, &audit.LogOptions{Changes: c})
	return c, nil
}

// RemoveContact deletes a contact; an unknown id is a no-op.
func (s *Service) RemoveContact(ctx context.Context, id string) {
	if s.repo.Remove(id) {
		s.auditor.Log(ctx, model.AuditActionDelete, model.AuditEntityContact, id, nil)
	}
}

// SearchContacts matches name and email; a type of "" or "all" keeps every type.
func (s *Service) SearchContacts(ctx context.Context, filters model.ContactFilters) []model.Contact {
	s.metrics.Searches.WithLabelValues(model.AuditEntityContact).Inc()

	typ := filters.Type
	if typ == typeAll {
		typ = ""
	}
	return search.Filter(s.repo.All(),
		search.Text(filters.SearchTerm,
			func(c model.Contact) string { return c.Name },
			func(c model.Contact) string { return c.Email },
		),
		search.Equal(func(c model.Contact) string { return string(c.Type) }, typ),
	)
}
