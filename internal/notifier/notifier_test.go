package notifier

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/prayag-camps/magh-mela-api/internal/domain"
	"github.com/prayag-camps/magh-mela-api/internal/models"
)

func sampleBooking() BookingNotice {
	b := models.Booking{
		ID:            7,
		GuestName:     "Asha Devi",
		Mobile:        "919876543210",
		CheckIn:       time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC),
		GuestCount:    2,
		TotalAmount:   20000,
		AdvanceAmount: 2000,
		Status:        models.StatusConfirmed,
		BookingType:   models.TypeOnlineToken,
	}
	return NewBookingNotice(b, models.Camp{NameEn: "Premium Swiss Cottage"})
}

type fakeDiscord struct {
	channel string
	content string
	err     error
}

func (f *fakeDiscord) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.channel = channelID
	f.content = content
	return &discordgo.Message{}, f.err
}

func TestDiscordNotifier_NotifyBooking(t *testing.T) {
	fake := &fakeDiscord{}
	n := NewDiscordNotifier(fake, "chan-1")

	require.NoError(t, n.NotifyBooking(context.Background(), sampleBooking()))
	assert.Equal(t, "chan-1", fake.channel)
	assert.Contains(t, fake.content, "New Booking #7")
	assert.Contains(t, fake.content, "2026-01-14 - 2026-01-16")
	assert.Contains(t, fake.content, "₹20000 (advance ₹2000)")
}

func TestDiscordNotifier_MissingChannel(t *testing.T) {
	n := NewDiscordNotifier(&fakeDiscord{}, "")
	assert.Error(t, n.NotifyContact(context.Background(), ContactNotice{Name: "Gopal"}))

	noSession := NewDiscordNotifier(nil, "chan")
	assert.Error(t, noSession.NotifyContact(context.Background(), ContactNotice{Name: "Gopal"}))
}

type fakeMailer struct {
	sent []*gomail.Message
}

func (f *fakeMailer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return nil
}

func TestMailNotifier(t *testing.T) {
	fake := &fakeMailer{}
	n := &MailNotifier{dialer: fake, from: "camp@example.com", to: "office@example.com"}

	require.NoError(t, n.NotifyContact(context.Background(), ContactNotice{Name: "Gopal", Mobile: "919876543210", Message: "Family tent?"}))
	require.Len(t, fake.sent, 1)
	assert.Equal(t, []string{"New Inquiry from Gopal"}, fake.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"office@example.com"}, fake.sent[0].GetHeader("To"))

	_, err := NewMailNotifier(MailConfig{})
	assert.Error(t, err)
}

func TestFormRelayNotifier(t *testing.T) {
	var got formRelayPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		if strings.Contains(got.Subject, "Reject") {
			_, _ = w.Write([]byte(`{"success":false,"message":"invalid key"}`))
			return
		}
		if strings.Contains(got.Subject, "Html") {
			_, _ = w.Write([]byte(`<html>maintenance</html>`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	n, err := NewFormRelayNotifier(srv.URL, "key-1", srv.Client())
	require.NoError(t, err)

	require.NoError(t, n.NotifyContact(context.Background(), ContactNotice{Name: "Gopal", Mobile: "9876543210", Message: "hello"}))
	assert.Equal(t, "key-1", got.AccessKey)
	assert.Equal(t, "New Inquiry from Gopal", got.Subject)
	assert.Equal(t, "Magh Mela Website", got.FromName)
	assert.Contains(t, got.Message, "Mobile: 9876543210")

	assert.ErrorContains(t, n.NotifyContact(context.Background(), ContactNotice{Name: "Reject"}), "invalid key")
	assert.ErrorContains(t, n.NotifyContact(context.Background(), ContactNotice{Name: "Html"}), "non-JSON")

	_, err = NewFormRelayNotifier(srv.URL, "", nil)
	assert.Error(t, err)
}

func TestFormRelayNotifier_BreakerOpens(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n, err := NewFormRelayNotifier(srv.URL, "key", srv.Client())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Error(t, n.NotifyBooking(context.Background(), sampleBooking()))
	}
	assert.Equal(t, 3, calls)
}

type stubChannel struct {
	name     string
	err      error
	bookings int
}

func (s *stubChannel) Name() string { return s.name }

func (s *stubChannel) NotifyBooking(ctx context.Context, notice BookingNotice) error {
	s.bookings++
	return s.err
}

func (s *stubChannel) NotifyContact(ctx context.Context, notice ContactNotice) error {
	return s.err
}

func TestMulti_ContinuesPastFailures(t *testing.T) {
	broken := &stubChannel{name: "discord", err: errors.New("gateway down")}
	ok := &stubChannel{name: "email"}
	m := NewMulti(broken, ok)

	err := m.NotifyBooking(context.Background(), sampleBooking())
	require.Error(t, err)
	assert.Equal(t, 1, ok.bookings)

	var up domain.UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, "discord", up.Channel)

	assert.NoError(t, NewMulti(ok).NotifyContact(context.Background(), ContactNotice{}))
}
