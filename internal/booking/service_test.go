package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choppersalon/platform/internal/auth"
	"github.com/choppersalon/platform/internal/notify"
	"github.com/choppersalon/platform/internal/storage"
	"github.com/choppersalon/platform/pkg/logging"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []notify.EmailMessage
}

func (r *recordingSender) Send(_ context.Context, msg notify.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recordingSender) messages() []notify.EmailMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.EmailMessage(nil), r.sent...)
}

func newTestBooking(t *testing.T) (*Service, *auth.SessionStore, *recordingSender) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := auth.NewSessionStore(storage.NewRedisStore(client), 0)
	sender := &recordingSender{}
	store := NewWizardStore(0)
	t.Cleanup(store.Close)
	svc := NewService(store, sessions, sender, nil, logging.New("error"))
	return svc, sessions, sender
}

func completeSelection(t *testing.T, svc *Service, sid string) {
	t.Helper()
	ctx := context.Background()

	_, err := svc.SelectService(sid, "haircut")
	require.NoError(t, err)
	_, _, err = svc.Next(ctx, sid)
	require.NoError(t, err)

	_, err = svc.SelectStylist(sid, 2)
	require.NoError(t, err)
	_, _, err = svc.Next(ctx, sid)
	require.NoError(t, err)

	date := svc.Dates()[0]
	_, err = svc.SelectDate(sid, date.Value)
	require.NoError(t, err)
	_, _, err = svc.Next(ctx, sid)
	require.NoError(t, err)

	_, err = svc.SelectTimeSlot(sid, "2pm")
	require.NoError(t, err)
}

func TestDateOptionsCoverTwoWeeks(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	dates := DateOptions(now)
	require.Len(t, dates, 14)
	assert.Equal(t, "2026-03-11", dates[0].Value)
	assert.Equal(t, "Wed, Mar 11", dates[0].Label)
	assert.Equal(t, "2026-03-24", dates[13].Value)
}

func TestNextRequiresSelection(t *testing.T) {
	svc, _, _ := newTestBooking(t)
	ctx := context.Background()
	const sid = "sess-1"

	state, confirmation, err := svc.Next(ctx, sid)
	require.ErrorIs(t, err, ErrSelectionRequired)
	assert.Nil(t, confirmation)
	assert.Equal(t, StepService, state.Step)

	_, err = svc.SelectService(sid, "color")
	require.NoError(t, err)
	state, confirmation, err = svc.Next(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, confirmation)
	assert.Equal(t, StepStylist, state.Step)
}

func TestSelectionValidation(t *testing.T) {
	svc, _, _ := newTestBooking(t)
	const sid = "sess-1"

	_, err := svc.SelectService(sid, "perm")
	assert.ErrorIs(t, err, ErrUnknownService)

	_, err = svc.SelectStylist(sid, 99)
	assert.ErrorIs(t, err, ErrUnknownStylist)

	// Today and day 15 are outside the offered window.
	_, err = svc.SelectDate(sid, time.Now().Format("2006-01-02"))
	assert.ErrorIs(t, err, ErrUnknownDate)

	_, err = svc.SelectTimeSlot(sid, "8am")
	assert.ErrorIs(t, err, ErrUnknownSlot)

	// 11 AM is listed but marked unavailable.
	_, err = svc.SelectTimeSlot(sid, "11am")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestConfirmIsTerminal(t *testing.T) {
	svc, _, _ := newTestBooking(t)
	ctx := context.Background()
	const sid = "sess-1"

	completeSelection(t, svc, sid)

	state, confirmation, err := svc.Next(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, confirmation)

	assert.Equal(t, "Haircut", confirmation.Service.Name)
	assert.Equal(t, "Jamie Smith", confirmation.Stylist.Name)
	assert.Equal(t, "2:00 PM", confirmation.TimeSlot.Time)
	assert.Contains(t, confirmation.Message, "Jamie Smith")

	// There is no step 5: the wizard is back at the start with an empty
	// selection.
	assert.Equal(t, StepService, state.Step)
	assert.Equal(t, Selection{}, state.Selection)
	assert.Equal(t, StepService, svc.State(sid).Step)
}

func TestConfirmEmailsLoggedInVisitor(t *testing.T) {
	svc, sessions, sender := newTestBooking(t)
	ctx := context.Background()
	const sid = "sess-1"

	require.NoError(t, sessions.Put(ctx, sid, &auth.Session{
		IsAuthenticated: true,
		User:            &auth.User{ID: "u1", Name: "Dana Cruz", Email: "dana@example.com"},
	}))

	completeSelection(t, svc, sid)
	_, confirmation, err := svc.Next(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, confirmation)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "dana@example.com", msgs[0].To)
	assert.Contains(t, msgs[0].Body, confirmation.Message)
}

func TestConfirmWithoutProfileSkipsEmail(t *testing.T) {
	svc, _, sender := newTestBooking(t)
	ctx := context.Background()
	const sid = "sess-1"

	completeSelection(t, svc, sid)
	_, confirmation, err := svc.Next(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, confirmation)
	assert.Empty(t, sender.messages())
}

func TestPrevStopsAtFirstStep(t *testing.T) {
	svc, _, _ := newTestBooking(t)
	ctx := context.Background()
	const sid = "sess-1"

	state := svc.Prev(sid)
	assert.Equal(t, StepService, state.Step)

	_, err := svc.SelectService(sid, "styling")
	require.NoError(t, err)
	_, _, err = svc.Next(ctx, sid)
	require.NoError(t, err)

	state = svc.Prev(sid)
	assert.Equal(t, StepService, state.Step)
	// The earlier selection is kept when stepping back.
	assert.Equal(t, "styling", state.Selection.Service)
}

func TestCancelDiscardsSelection(t *testing.T) {
	svc, _, _ := newTestBooking(t)
	const sid = "sess-1"

	_, err := svc.SelectService(sid, "highlights")
	require.NoError(t, err)

	svc.Cancel(sid)
	state := svc.State(sid)
	assert.Equal(t, StepService, state.Step)
	assert.Equal(t, Selection{}, state.Selection)
}
