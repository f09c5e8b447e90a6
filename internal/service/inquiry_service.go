package service

import (
	"context"
	"fmt"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/model"
	"github.com/rs/zerolog"
)

// InquiryService forwards public contact-form submissions to the consultancy
// inbox. Inquiries are not persisted.
type InquiryService struct {
	cfg    *config.Config
	mailer Mailer
	log    zerolog.Logger
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(cfg *config.Config, mailer Mailer, log zerolog.Logger) *InquiryService {
	return &InquiryService{
		cfg:    cfg,
		mailer: mailer,
		log:    log.With().Str("service", "inquiry").Logger(),
	}
}

// Submit mails the inquiry to the configured inbox.
func (s *InquiryService) Submit(ctx context.Context, req *model.InquiryRequest) error {
	body := fmt.Sprintf(`<p><b>Name:</b> %s</p>
<p><b>Email:</b> %s</p>
<p><b>Mobile:</b> %s</p>
<p><b>Message:</b></p>
<p>%s</p>`, req.Name, req.Email, req.Mobile, req.Message)

	subject := "New inquiry from " + req.Name
	if err := s.mailer.Send(ctx, s.cfg.InquiryTo, subject, body); err != nil {
		return fmt.Errorf("forward inquiry: %w", err)
	}

	s.log.Info().Str("from", req.Email).Msg("inquiry forwarded")
	return nil
}
