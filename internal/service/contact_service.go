package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blog-cms-api/internal/apperr"
	"github.com/blog-cms-api/internal/models"
	"github.com/blog-cms-api/internal/notification"
	"github.com/blog-cms-api/internal/repository"
	"github.com/blog-cms-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contactService struct {
	repo        repository.ContactRepository
	notifier    Notifier
	adminNotify string
	now         func() time.Time
	log         zerolog.Logger
}

func newContactService(repo repository.ContactRepository, notifier Notifier, adminNotify string, now func() time.Time, log zerolog.Logger) *contactService {
	return &contactService{
		repo:        repo,
		notifier:    notifier,
		adminNotify: adminNotify,
		now:         now,
		log:         log.With().Str("service", "contact").Logger(),
	}
}

func (s *contactService) List(ctx context.Context, params models.ListParams) (*models.Page[*models.Contact], error) {
	items, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, apperr.Upstream("list contacts", err)
	}
	page := models.NewPage(items, total, params)
	return &page, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*models.Contact, error) {
	if err := validation.ParseID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Upstream("get contact", err)
	}
	if c == nil {
		return nil, apperr.NotFound("contact")
	}
	return c, nil
}

// Create stores an inquiry and notifies the admin inbox and the submitter.
// Mail delivery never affects the result.
func (s *contactService) Create(ctx context.Context, in *models.ContactCreateInput) (*models.Contact, error) {
	if in.PrivacyPolicy == nil || !*in.PrivacyPolicy {
		return nil, apperr.InvalidField("privacyPolicy", "must be accepted")
	}
	err := requireText(
		textField{"companyName", &in.CompanyName},
		textField{"contactName", &in.ContactName},
		textField{"inquiry", &in.Inquiry},
	)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &models.Contact{
		ID:            uuid.New().String(),
		CompanyName:   strings.TrimSpace(in.CompanyName),
		ContactName:   strings.TrimSpace(in.ContactName),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:         in.Phone,
		Inquiry:       in.Inquiry,
		PrivacyPolicy: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperr.Upstream("create contact", err)
	}

	s.log.Info().Str("contact_id", c.ID).Str("company", c.CompanyName).Msg("Contact inquiry received")
	s.notify(c)
	return c, nil
}

func (s *contactService) notify(c *models.Contact) {
	if s.notifier == nil {
		return
	}
	if s.adminNotify != "" {
		s.notifier.Send(notification.Message{
			To:      []string{s.adminNotify},
			ReplyTo: c.Email,
			Subject: fmt.Sprintf("New inquiry from %s", c.CompanyName),
			Body: fmt.Sprintf("Company: %s\nContact: %s\nEmail: %s\nPhone: %s\n\n%s\n",
				c.CompanyName, c.ContactName, c.Email, c.Phone, c.Inquiry),
		})
	}
	s.notifier.Send(notification.Message{
		To:      []string{c.Email},
		Subject: "We received your inquiry",
		Body: fmt.Sprintf("Dear %s,\n\nThank you for contacting us. We will get back to you shortly.\n\n---\n%s\n",
			c.ContactName, c.Inquiry),
	})
}

func (s *contactService) Update(ctx context.Context, id string, in *models.ContactUpdateInput) (*models.Contact, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = requireText(
		textField{"companyName", in.CompanyName},
		textField{"contactName", in.ContactName},
		textField{"inquiry", in.Inquiry},
	)
	if err != nil {
		return nil, err
	}
	if in.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.ContactName != nil {
		c.ContactName = strings.TrimSpace(*in.ContactName)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Inquiry != nil {
		c.Inquiry = *in.Inquiry
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apperr.Upstream("update contact", err)
	}
	return c, nil
}

// Delete soft-deletes contacts
func (s *contactService) Delete(ctx context.Context, ids []string) (int64, error) {
	if err := validation.ParseIDs(ids); err != nil {
		return 0, err
	}
	n, err := s.repo.SoftDelete(ctx, dedupe(ids))
	if err != nil {
		return 0, apperr.Upstream("delete contacts", err)
	}
	s.log.Info().Int64("deleted", n).Msg("Contacts deleted")
	return n, nil
}
