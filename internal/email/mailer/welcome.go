// internal/email/mailer/welcome.go
package mailer

import "github.com/dangerclosesec/atrium/internal/email"

// WelcomeTemplateData contains data for the welcome email template
type WelcomeTemplateData struct {
	FirstName     string
	DashboardLink string
}

// SendWelcomeEmail sends a welcome email after signup
func SendWelcomeEmail(s *email.Service, to, firstName, dashboardLink string) error {
	emailData := email.EmailData{
		To:           to,
		FromName:     "Atrium",
		Subject:      "Welcome to Atrium!",
		TemplateName: "welcome",
		TemplateData: WelcomeTemplateData{
			FirstName:     firstName,
			DashboardLink: dashboardLink,
		},
	}

	return s.SendEmail(emailData)
}
