package reactions

import (
	"context"
	"errors"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwru-rcci/metarootbus/internal/result"
)

func TestNoopFiresNothing(t *testing.T) {
	n := Noop{}
	assert.Equal(t, 0, n.OccurInResponseTo("Handler", "addGroup", nil, result.Err(470, "denied"), 0))
}

type fakeMailer struct {
	sent      []postmark.Email
	err       error
	errorCode int
}

func (f *fakeMailer) SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	if f.err != nil {
		return postmark.EmailResponse{}, f.err
	}
	f.sent = append(f.sent, email)
	return postmark.EmailResponse{ErrorCode: f.errorCode}, nil
}

func TestDefaultReactionsFiresOnError(t *testing.T) {
	mailer := &fakeMailer{}
	r := &DefaultReactions{Mailer: mailer, FromAddr: "bus@example.com", ToAddr: "ops@example.com"}

	fired := r.OccurInResponseTo("SchedulerManager", "addGroup", map[string]any{"name": "g"}, result.Err(470, "denied"), 0)

	assert.Equal(t, 1, fired)
	require.Len(t, mailer.sent, 1)
	assert.Contains(t, mailer.sent[0].HTMLBody, "SchedulerManager")
	assert.Contains(t, mailer.sent[0].HTMLBody, "addGroup")
	assert.Equal(t, "metaroot operation failed", mailer.sent[0].Subject)
}

func TestDefaultReactionsSilentOnSuccess(t *testing.T) {
	mailer := &fakeMailer{}
	r := &DefaultReactions{Mailer: mailer, FromAddr: "bus@example.com", ToAddr: "ops@example.com"}

	fired := r.OccurInResponseTo("SchedulerManager", "addGroup", nil, result.OK(nil), 0)

	assert.Equal(t, 0, fired)
	assert.Empty(t, mailer.sent)
}

func TestDefaultReactionsSendFailureSwallowed(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	r := &DefaultReactions{Mailer: mailer, FromAddr: "bus@example.com", ToAddr: "ops@example.com"}

	assert.NotPanics(t, func() {
		fired := r.OccurInResponseTo("SchedulerManager", "addGroup", nil, result.Err(455, "panic"), 0)
		assert.Equal(t, 0, fired)
	})
}

func TestDefaultReactionsAPIRejectionTreatedAsFailure(t *testing.T) {
	mailer := &fakeMailer{errorCode: 300}
	r := &DefaultReactions{Mailer: mailer, FromAddr: "bus@example.com", ToAddr: "ops@example.com"}

	fired := r.OccurInResponseTo("SchedulerManager", "addGroup", nil, result.Err(470, "denied"), 0)

	assert.Equal(t, 0, fired)
}

func TestDefaultReactionsNilMailerNoop(t *testing.T) {
	r := &DefaultReactions{}
	fired := r.OccurInResponseTo("SchedulerManager", "addGroup", nil, result.Err(455, "panic"), 0)
	assert.Equal(t, 0, fired)
}
