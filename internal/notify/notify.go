package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/finlytic/ccfm-service/internal/ccfm"
	"github.com/finlytic/ccfm-service/internal/config"
	"github.com/finlytic/ccfm-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending alert digest emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendAlertDigest mails a user the recommendations regenerated from the
// alert set of their latest analysis. Callers only invoke this when at
// least one alert is raised.
func (s *Sender) SendAlertDigest(user *models.User, analysis models.Analysis) error {
	recs := ccfm.Recommend(analysis.Alerts)
	if len(recs) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{user.Email}
	e.Subject = fmt.Sprintf("CCFM alert digest: %d issue(s) need attention", len(recs))

	var body strings.Builder
	fmt.Fprintf(&body, "Dear %s,\n\n", user.Name)
	fmt.Fprintf(&body, "Your analysis from %s raised the following:\n\n",
		analysis.CreatedAt.Format("2006-01-02"))
	for _, rec := range recs {
		fmt.Fprintf(&body, "- [%s] %s: %s\n", rec.Priority, rec.Category, rec.Message)
	}
	body.WriteString("\nLog in to the dashboard to review the full metric breakdown.\n")
	body.WriteString("\nBest regards,\nCCFM Service")
	e.Text = []byte(body.String())

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", user.Email, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Digest sent to %s: %s", user.Email, e.Subject)
	return nil
}

// DigestRepository is the read surface the digest job needs
type DigestRepository interface {
	LatestAnalysisPerUser() ([]models.Analysis, map[int64]*models.User, error)
}

// DigestSender delivers one digest
type DigestSender interface {
	SendAlertDigest(user *models.User, analysis models.Analysis) error
}

// Digest walks each user's newest analysis and mails those with raised
// alerts. Wired to a cron schedule in main.
type Digest struct {
	repo   DigestRepository
	sender DigestSender
	logger *logrus.Logger
}

// NewDigest creates the scheduled digest job
func NewDigest(repo DigestRepository, sender DigestSender, logger *logrus.Logger) *Digest {
	return &Digest{repo: repo, sender: sender, logger: logger}
}

// Run executes one digest pass. Send failures are logged per user and do
// not abort the pass.
func (d *Digest) Run() {
	analyses, users, err := d.repo.LatestAnalysisPerUser()
	if err != nil {
		d.logger.Errorf("Digest pass failed: %v", err)
		return
	}

	sent := 0
	for _, analysis := range analyses {
		if analysis.Alerts == (models.AlertSet{}) {
			continue
		}
		user, ok := users[analysis.UserID]
		if !ok {
			continue
		}
		if err := d.sender.SendAlertDigest(user, analysis); err != nil {
			continue
		}
		sent++
	}
	d.logger.Infof("Digest pass complete: %d email(s) sent", sent)
}
