package notification

import (
	"testing"
	"time"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:           1,
		Reference:    "BK-1",
		CheckInDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalPrice:   decimal.NewFromInt(360),
		PaidAmount:   decimal.NewFromInt(100),
		Hotel:        &models.Hotel{Name: "Sunrise Inn"},
		Room:         &models.Room{Number: "101"},
		Client:       &models.Client{Email: "ana@example.com", FirstName: "Ana", LastName: "Gomez"},
	}
}

func TestRender_Golden(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	r := NewRenderer(language.English)

	cancelled := sampleBooking()
	cancelled.CancellationReason = "guest changed plans"

	tests := []struct {
		name    string
		kind    models.NotificationKind
		booking *models.Booking
		subject string
	}{
		{"booking_confirmation", models.NotifyBookingConfirmation, sampleBooking(), "Booking confirmed: BK-1"},
		{"booking_cancellation", models.NotifyBookingCancellation, cancelled, "Booking cancelled: BK-1"},
		{"payment_confirmation", models.NotifyPaymentConfirmation, sampleBooking(), "Payment received: BK-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body := r.Render(tt.kind, tt.booking)

			assert.Equal(t, tt.subject, subject)
			g.Assert(t, tt.name, []byte(body))
		})
	}
}

func TestRender_SpanishWithRegionFallsBack(t *testing.T) {
	r := NewRenderer(language.MustParse("es-AR"))

	subject, body := r.Render(models.NotifyBookingConfirmation, sampleBooking())

	assert.Equal(t, "Reserva confirmada: BK-1", subject)
	assert.Contains(t, body, "Hola Ana Gomez,")
	assert.Contains(t, body, "Habitación: 101")
}

func TestRender_FallsBackToEmailWithoutName(t *testing.T) {
	b := sampleBooking()
	b.Client.FirstName, b.Client.LastName = "", ""

	_, body := NewRenderer(language.English).Render(models.NotifyBookingConfirmation, b)

	assert.Contains(t, body, "Hello ana@example.com,")
}
