package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	twilio "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rohitpal119/district-state-watch/internal/models"
	"github.com/rohitpal119/district-state-watch/internal/utils"
)

// NotificationService sends best-effort email/SMS. Nil clients mean
// the channel is disabled; failures are logged, never returned to the
// workflow that triggered them.
type NotificationService struct {
	twilioClient   *twilio.RestClient
	sendgridClient *sendgrid.Client
	fromPhone      string
	fromEmail      string
	orgName        string
}

func NewNotificationService(
	twilioClient *twilio.RestClient,
	sendgridClient *sendgrid.Client,
	fromPhone string,
	fromEmail string,
	orgName string,
) *NotificationService {
	return &NotificationService{
		twilioClient:   twilioClient,
		sendgridClient: sendgridClient,
		fromPhone:      fromPhone,
		fromEmail:      fromEmail,
		orgName:        orgName,
	}
}

// NotifyCriticalAlert pushes a critical alert to the district's
// collectors over both channels.
func (n *NotificationService) NotifyCriticalAlert(a *models.Alert, collectors []*models.Profile) {
	if n == nil {
		return
	}
	subject := fmt.Sprintf("[CRITICAL] %s — %s", a.District, a.Title)
	body := fmt.Sprintf(
		"A critical alert was raised in %s.\n\nType: %s\nTitle: %s\n\n%s",
		a.District, a.AlertType, a.Title, a.Description,
	)

	for _, c := range collectors {
		if n.twilioClient != nil && c.PhoneNumber != nil {
			params := &twilioApi.CreateMessageParams{}
			params.SetTo(*c.PhoneNumber)
			params.SetFrom(n.fromPhone)
			params.SetBody(subject + " :: " + body)
			if _, smsErr := n.twilioClient.Api.CreateMessage(params); smsErr != nil {
				utils.Logger.WithError(smsErr).Warnf("Failed to send alert SMS to collector %s", c.ID)
			}
		}

		if n.sendgridClient != nil {
			from := mail.NewEmail(n.orgName, n.fromEmail)
			to := mail.NewEmail(c.FullName, c.Email)
			msg := mail.NewSingleEmail(from, subject, to, body, "")
			if _, sgErr := n.sendgridClient.Send(msg); sgErr != nil {
				utils.Logger.WithError(sgErr).Warnf("Failed to send alert email to collector %s", c.ID)
			}
		}
	}
}

// NotifyFundUpdateReviewed emails the contractor the review outcome.
func (n *NotificationService) NotifyFundUpdateReviewed(
	fu *models.FundUpdate,
	proj *models.Project,
	contractor *models.Profile,
) {
	if n == nil || n.sendgridClient == nil {
		utils.Logger.Debug("SendGrid client is nil, skipping fund review notification")
		return
	}
	subject := fmt.Sprintf("Fund update %s: %s", fu.Status, proj.Name)
	body := fmt.Sprintf(
		"Your fund release request of ₹%.2f for %q has been %s.",
		fu.Amount, proj.Name, fu.Status,
	)
	from := mail.NewEmail(n.orgName, n.fromEmail)
	to := mail.NewEmail(contractor.FullName, contractor.Email)
	msg := mail.NewSingleEmail(from, subject, to, body, "")
	if _, err := n.sendgridClient.Send(msg); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to email fund review outcome to contractor %s", contractor.ID)
	}
}
