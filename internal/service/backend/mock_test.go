package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockRecordsSubmissions(t *testing.T) {
	m := NewMock()
	in := validIntake()
	in.Attachments = []Attachment{{Filename: "a.jpg"}}

	ack, err := m.SubmitIntake(context.Background(), in, true)
	require.NoError(t, err)
	assert.Equal(t, contactAck, ack.Message)

	in.Attachments[0].Filename = "mutated"
	subs := m.Submissions()
	require.Len(t, subs, 1)
	assert.True(t, subs[0].WithAttachments)
	assert.Equal(t, "a.jpg", subs[0].Intake.Attachments[0].Filename)
}

func TestMockQuoteRequest(t *testing.T) {
	in := validIntake()
	in.Target = TargetQuoteRequest
	ack, err := NewMock().SubmitIntake(context.Background(), in, false)
	require.NoError(t, err)
	require.NotNil(t, ack.Quote)
	assert.Equal(t, "pending", ack.Quote.Status)
}

func TestMockSubmitFunc(t *testing.T) {
	m := NewMock()
	m.SubmitFunc = func(context.Context, Intake, bool) (*Ack, error) {
		return nil, &APIError{Kind: ErrorKindServer, Status: 500, Detail: "queue full"}
	}
	_, err := m.SubmitIntake(context.Background(), validIntake(), false)
	assert.ErrorIs(t, err, ErrServer)
	assert.Len(t, m.Submissions(), 1)
}

func TestMockCatalog(t *testing.T) {
	m := NewMock()
	ctx := context.Background()

	services, err := m.ListServices(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, services)

	_, err = m.GetService(ctx, "lawn-mowing")
	require.NoError(t, err)
	_, err = m.GetService(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	m.CompanyErr = errors.New("down")
	_, err = m.GetCompanyInfo(ctx)
	assert.Error(t, err)
}
