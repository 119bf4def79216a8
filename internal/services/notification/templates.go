package notification

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const (
	SubjectVerification  = "Your EMI Verify Account Verification Code"
	SubjectPasswordReset = "Reset Your EMI Verify Password"
)

var verificationText = texttemplate.Must(texttemplate.New("verification").Parse(`Hello {{.Name}},

Thank you for signing up for EMI Verify.
Your verification code is: {{.Code}}

This code will expire in 30 minutes. If you did not request this, please ignore this email.

Regards,
EMI Verify Team`))

var verificationHTML = htmltemplate.Must(htmltemplate.New("verification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Hello {{.Name}},</h2>
  <p>Thank you for signing up for EMI Verify.</p>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 5px; text-align: center; margin: 20px 0;">
    <h3 style="color: #007bff; margin: 0;">Your verification code is:</h3>
    <h1 style="color: #007bff; font-size: 32px; letter-spacing: 5px; margin: 10px 0;">{{.Code}}</h1>
  </div>
  <p style="color: #666;">This code will expire in 30 minutes. If you did not request this, please ignore this email.</p>
  <p style="color: #999; font-size: 14px;">Regards,<br>EMI Verify Team</p>
</div>`))

var resetText = texttemplate.Must(texttemplate.New("reset").Parse(`Hello {{.Name}},

We received a request to reset your EMI Verify account password.
Click the link below to reset your password:
{{.Link}}

This link will expire in 30 minutes. If you did not request this, please ignore this email.

Regards,
EMI Verify Team`))

var resetHTML = htmltemplate.Must(htmltemplate.New("reset").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Hello {{.Name}},</h2>
  <p>We received a request to reset your EMI Verify account password.</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background: #007bff; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Reset Password</a>
  </div>
  <p style="color: #666; font-size: 14px;">Or copy and paste this link in your browser:<br>{{.Link}}</p>
  <p style="color: #666;">This link will expire in 30 minutes. If you did not request this, please ignore this email.</p>
  <p style="color: #999; font-size: 14px;">Regards,<br>EMI Verify Team</p>
</div>`))

type templateData struct {
	Name string
	Code string
	Link string
}

func render(text *texttemplate.Template, html *htmltemplate.Template, data templateData) (string, string, error) {
	var tb, hb bytes.Buffer
	if err := text.Execute(&tb, data); err != nil {
		return "", "", err
	}
	if err := html.Execute(&hb, data); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}

func verificationMessage(to, name, code string) (Message, error) {
	text, html, err := render(verificationText, verificationHTML, templateData{Name: name, Code: code})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: SubjectVerification, Text: text, HTML: html}, nil
}

func passwordResetMessage(to, name, link string) (Message, error) {
	text, html, err := render(resetText, resetHTML, templateData{Name: name, Link: link})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: SubjectPasswordReset, Text: text, HTML: html}, nil
}
