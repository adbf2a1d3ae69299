package reactions

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/mrz1836/postmark"

	"github.com/cwru-rcci/metarootbus/internal/result"
	"github.com/cwru-rcci/metarootbus/pkg/logging"
)

const mailTimeout = 10 * time.Second

var bodyTemplate = template.Must(
	template.New("reaction-email").Funcs(sprig.TxtFuncMap()).Parse(`<table>
<tr><td>Class</td><td>{{ .Class }}</td></tr>
<tr><td>Action</td><td>{{ .Action }}</td></tr>
<tr><td>Payload</td><td>{{ .Payload | toString }}</td></tr>
<tr><td>Result Status</td><td>{{ .Status }}</td></tr>
<tr><td>Result Payload</td><td>{{ .Response | toString }}</td></tr>
</table>`),
)

// Mailer is the subset of the postmark client's send capability this
// package needs, so tests can substitute a fake without a real API key.
type Mailer interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// DefaultReactions fires exactly one HTML notification email when a
// manager's Result is an error, reproducing
// original_source/metaroot/api/reactions.py's DefaultReactions.
type DefaultReactions struct {
	Mailer    Mailer
	FromAddr  string
	ToAddr    string
	SubjectFn func(class, action string) string
}

// NewDefaultReactions builds a DefaultReactions backed by a real postmark
// client.
func NewDefaultReactions(serverToken, from, to string) *DefaultReactions {
	return &DefaultReactions{
		Mailer:   postmark.NewClient(serverToken, ""),
		FromAddr: from,
		ToAddr:   to,
	}
}

// OccurInResponseTo sends one notification email when res is an error and
// returns 1; otherwise returns 0. Failures are logged and swallowed, and
// the send is bounded by mailTimeout so a slow mail provider cannot stall
// the Router.
func (d *DefaultReactions) OccurInResponseTo(class, action string, payload any, res result.Result, priorCount int) int {
	if res.IsSuccess() {
		return 0
	}
	if d.Mailer == nil {
		return 0
	}

	body, err := d.renderBody(class, action, payload, res)
	if err != nil {
		logging.Warn(logSubsystem, "failed to render reaction email body: %v", err)
		return 0
	}

	subject := "metaroot operation failed"
	if d.SubjectFn != nil {
		subject = d.SubjectFn(class, action)
	}

	ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
	defer cancel()

	resp, err := d.Mailer.SendEmail(ctx, postmark.Email{
		From:     d.FromAddr,
		To:       d.ToAddr,
		Subject:  subject,
		HTMLBody: body,
	})
	if err != nil {
		logging.Warn(logSubsystem, "failed to send reaction email: %v", err)
		return 0
	}
	if resp.ErrorCode > 0 {
		logging.Warn(logSubsystem, "postmark rejected reaction email: %d - %s", resp.ErrorCode, resp.Message)
		return 0
	}

	return 1
}

func (d *DefaultReactions) renderBody(class, action string, payload any, res result.Result) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Class, Action     string
		Payload, Response any
		Status            int
	}{
		Class: class, Action: action, Payload: payload,
		Status: res.Status, Response: res.Response,
	}
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("reactions: render body: %w", err)
	}
	return buf.String(), nil
}
