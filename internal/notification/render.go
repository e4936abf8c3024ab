package notification

import (
	"strings"

	"github.com/Eursukkul/hotel-booking/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English text.
const (
	keySubjectConfirmed = "Booking confirmed: %s"
	keySubjectCancelled = "Booking cancelled: %s"
	keySubjectPayment   = "Payment received: %s"
	keyGreeting         = "Hello %s,"
	keyConfirmed        = "Your booking %s at %s is confirmed."
	keyCancelled        = "Your booking %s at %s has been cancelled."
	keyPayment          = "We received your payment for booking %s at %s."
	keyRoom             = "Room: %s"
	keyCheckIn          = "Check-in: %s"
	keyCheckOut         = "Check-out: %s"
	keyNights           = "Nights: %d"
	keyTotal            = "Total: %s"
	keyPaid             = "Paid: %s"
	keyReason           = "Reason: %s"
	keySignature        = "See you soon, %s"
)

func newCatalog() *catalog.Builder {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	es := map[string]string{
		keySubjectConfirmed: "Reserva confirmada: %s",
		keySubjectCancelled: "Reserva cancelada: %s",
		keySubjectPayment:   "Pago recibido: %s",
		keyGreeting:         "Hola %s,",
		keyConfirmed:        "Tu reserva %s en %s está confirmada.",
		keyCancelled:        "Tu reserva %s en %s fue cancelada.",
		keyPayment:          "Recibimos tu pago de la reserva %s en %s.",
		keyRoom:             "Habitación: %s",
		keyCheckIn:          "Entrada: %s",
		keyCheckOut:         "Salida: %s",
		keyNights:           "Noches: %d",
		keyTotal:            "Total: %s",
		keyPaid:             "Pagado: %s",
		keyReason:           "Motivo: %s",
		keySignature:        "Te esperamos, %s",
	}
	for k, v := range es {
		_ = cat.SetString(language.Spanish, k, v)
	}
	return cat
}

// Renderer turns a booking into a localized subject and body.
type Renderer struct {
	printer *message.Printer
}

func NewRenderer(tag language.Tag) *Renderer {
	return &Renderer{printer: message.NewPrinter(tag, message.Catalog(newCatalog()))}
}

// Render expects b.Hotel, b.Room and b.Client to be loaded.
func (r *Renderer) Render(kind models.NotificationKind, b *models.Booking) (subject, body string) {
	p := r.printer
	hotel := b.Hotel.Name
	stay := b.Stay()

	var intro string
	switch kind {
	case models.NotifyBookingCancellation:
		subject = p.Sprintf(keySubjectCancelled, b.Reference)
		intro = p.Sprintf(keyCancelled, b.Reference, hotel)
	case models.NotifyPaymentConfirmation:
		subject = p.Sprintf(keySubjectPayment, b.Reference)
		intro = p.Sprintf(keyPayment, b.Reference, hotel)
	default:
		subject = p.Sprintf(keySubjectConfirmed, b.Reference)
		intro = p.Sprintf(keyConfirmed, b.Reference, hotel)
	}

	name := b.Client.FullName()
	if name == "" {
		name = b.Client.Email
	}

	lines := []string{
		p.Sprintf(keyGreeting, name),
		"",
		intro,
		"",
		p.Sprintf(keyRoom, b.Room.Number),
		p.Sprintf(keyCheckIn, stay.CheckIn.Format(models.DateLayout)),
		p.Sprintf(keyCheckOut, stay.CheckOut.Format(models.DateLayout)),
		p.Sprintf(keyNights, stay.Nights()),
		p.Sprintf(keyTotal, b.TotalPrice.StringFixed(2)),
	}
	if kind == models.NotifyPaymentConfirmation {
		lines = append(lines, p.Sprintf(keyPaid, b.PaidAmount.StringFixed(2)))
	}
	if kind == models.NotifyBookingCancellation && b.CancellationReason != "" {
		lines = append(lines, p.Sprintf(keyReason, b.CancellationReason))
	}
	lines = append(lines, "", p.Sprintf(keySignature, hotel))

	return subject, strings.Join(lines, "\n") + "\n"
}
