// internal/email/mailer/organization_invitation.go
package mailer

import "github.com/dangerclosesec/atrium/internal/email"

// InvitationTemplateData contains data for the invitation email template
type InvitationTemplateData struct {
	OrganizationName string
	InviterName      string
	Role             string
	AcceptLink       string
	ExpiresAt        string
}

// SendInvitationEmail sends an organization invitation to the invitee
func SendInvitationEmail(s *email.Service, to string, data InvitationTemplateData) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Atrium",
		Subject:      "You've been invited to " + data.OrganizationName + " on Atrium",
		TemplateName: "organization_invitation",
		TemplateData: data,
	}

	return s.SendEmail(emailData)
}
