package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	PurposeAccountVerification = "account_verification"
	PurposePasswordReset       = "password_reset"
	PurposeWelcome             = "welcome"
)

type templateData struct {
	Email string
	Name  string
	OTP   string
}

var otpTemplate = template.Must(template.New("otp").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #333;">{{.Title}}</h2>
  <p>Hi,</p>
  <p>We received a request for <strong>{{.Email}}</strong>. Use the code below to continue:</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold; color: #1a73e8;">{{.OTP}}</p>
  <p>This code is valid for 10 minutes. If you did not request it, you can safely ignore this email.</p>
</div>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 480px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #333;">Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
  <p>Your account <strong>{{.Email}}</strong> has been created successfully.</p>
  <p>Verify your email address from your profile to unlock everything.</p>
</div>`))

// renderOTPBody builds the HTML body for a verification or reset code email.
func renderOTPBody(purpose, recipient, code string) (string, error) {
	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, struct {
		Title string
		templateData
	}{
		Title:        subjectFor(purpose),
		templateData: templateData{Email: recipient, OTP: code},
	})
	if err != nil {
		return "", fmt.Errorf("render %s template: %w", purpose, err)
	}
	return buf.String(), nil
}

func renderWelcomeBody(recipient, name string) (string, error) {
	var buf bytes.Buffer
	if err := welcomeTemplate.Execute(&buf, templateData{Email: recipient, Name: name}); err != nil {
		return "", fmt.Errorf("render welcome template: %w", err)
	}
	return buf.String(), nil
}

// subjectFor turns an OTP purpose into a subject line, e.g.
// "account_verification" -> "Account Verification OTP".
func subjectFor(purpose string) string {
	return formatPurpose(purpose) + " OTP"
}

func formatPurpose(purpose string) string {
	p := strings.ReplaceAll(purpose, "_", " ")
	return cases.Title(language.English).String(p)
}
