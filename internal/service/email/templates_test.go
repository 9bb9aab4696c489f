package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOTPBody(t *testing.T) {
	body, err := renderOTPBody(PurposeAccountVerification, "alice@x.com", "123456")
	require.NoError(t, err)
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "alice@x.com")
	assert.Contains(t, body, "Account Verification OTP")
}

func TestRenderWelcomeBody(t *testing.T) {
	body, err := renderWelcomeBody("alice@x.com", "Alice")
	require.NoError(t, err)
	assert.Contains(t, body, "alice@x.com")
	assert.Contains(t, body, "Alice")
}

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "Account Verification OTP", subjectFor(PurposeAccountVerification))
	assert.Equal(t, "Password Reset OTP", subjectFor(PurposePasswordReset))
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("Authnext", "no-reply@x.com", "alice@x.com", "Hello", "<p>hi</p>"))
	assert.Contains(t, msg, "From: Authnext <no-reply@x.com>\r\n")
	assert.Contains(t, msg, "To: alice@x.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "\r\n\r\n<p>hi</p>")
}
