// Package email renders account and reminder mails and hands them to a
// Transport.
package email

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/model"
)

type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Transport delivers one message.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// LogTransport writes messages to the service log instead of sending them.
type LogTransport struct{}

func (LogTransport) Send(ctx context.Context, msg Message) error {
	log.WithFields(log.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Infof("✉️ %s", msg.Text)
	return nil
}

// Mailer sends confirmation codes and due-date reminders.
type Mailer struct {
	transport Transport
}

func NewMailer(transport Transport) *Mailer {
	return &Mailer{transport: transport}
}

type confirmationData struct {
	Code    string
	Expires time.Duration
}

type reminderData struct {
	Name  string
	Title string
	Due   string
}

var (
	confirmationText = template.Must(template.New("confirmation").Parse(
		"Your confirmation code is {{.Code}}. It expires in {{.Expires}}.\n"))
	confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation").Parse(
		`<h2>Welcome to Taskboard</h2>
<p>Confirm your email address with this code:</p>
<h1>{{.Code}}</h1>
<p>The code expires in {{.Expires}}. If you did not sign up, ignore this email.</p>
`))

	reminderText = template.Must(template.New("reminder").Parse(
		"Hello {{.Name}}, the task \"{{.Title}}\" is due on {{.Due}}.\n"))
	reminderHTML = htmltemplate.Must(htmltemplate.New("reminder").Parse(
		`<h2>Task reminder</h2>
<p>Hello {{.Name}}, the task <b>{{.Title}}</b> is due on {{.Due}}.</p>
<p>Don't forget to complete it on time.</p>
`))
)

// SendConfirmationCode mails the code that confirms to's address.
func (m *Mailer) SendConfirmationCode(ctx context.Context, to, code string, expires time.Duration) error {
	data := confirmationData{Code: code, Expires: expires}
	msg, err := render(to, "Confirm your email address", confirmationText, confirmationHTML, data)
	if err != nil {
		return err
	}
	return m.transport.Send(ctx, msg)
}

// NotifyDueSoon mails assignee a reminder that task is due.
func (m *Mailer) NotifyDueSoon(ctx context.Context, assignee model.User, task model.Task) error {
	data := reminderData{Name: assignee.Name, Title: task.Title}
	if data.Name == "" {
		data.Name = assignee.Email
	}
	if task.DueDate != nil {
		data.Due = task.DueDate.UTC().Format("Jan 2, 2006 at 15:04 MST")
	}

	subject := fmt.Sprintf("Reminder: %q is due soon", task.Title)
	msg, err := render(assignee.Email, subject, reminderText, reminderHTML, data)
	if err != nil {
		return err
	}
	return m.transport.Send(ctx, msg)
}

func render(to, subject string, text *template.Template, html *htmltemplate.Template, data any) (Message, error) {
	var textBody, htmlBody bytes.Buffer
	if err := text.Execute(&textBody, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", text.Name(), err)
	}
	if err := html.Execute(&htmlBody, data); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", html.Name(), err)
	}
	return Message{To: to, Subject: subject, Text: textBody.String(), HTML: htmlBody.String()}, nil
}
