package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/court-booking/internal/models"
)

type Kind string

const (
	KindWelcome      Kind = "welcome"
	KindConfirmation Kind = "confirmation"
	KindCancellation Kind = "cancellation"
)

// RoutingKey is the topic a message is published under.
func (k Kind) RoutingKey() string {
	if k == KindWelcome {
		return "user.welcome"
	}
	return "reservation." + string(k)
}

type Message struct {
	Kind          Kind       `json:"kind"`
	To            string     `json:"to"`
	Subject       string     `json:"subject"`
	Body          string     `json:"body"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
}

func greeting(u models.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

func WelcomeMessage(u models.User) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", greeting(u))
	b.WriteString("Welcome to the tennis court reservation system!\n\n")
	b.WriteString("Your account has been created.\n\n")
	fmt.Fprintf(&b, "Email: %s\n\n", u.Email)
	b.WriteString("You can now log in and book our courts.\n")

	return Message{
		Kind:    KindWelcome,
		To:      u.Email,
		Subject: "Welcome to Tennis Courts Reservation System",
		Body:    b.String(),
	}
}

// ReservationMessage renders times in loc. r must carry Court and User.
func ReservationMessage(kind Kind, r models.Reservation, loc *time.Location) Message {
	start := r.StartAt.In(loc)
	end := r.EndAt.In(loc)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", greeting(r.User))

	var subject string
	switch kind {
	case KindCancellation:
		subject = "Reservation Canceled - " + r.Court.Name
		b.WriteString("Your reservation has been canceled.\n\n")
		fmt.Fprintf(&b, "Court: %s\n", r.Court.Name)
		fmt.Fprintf(&b, "Date: %s\n", start.Format("2006-01-02"))
		fmt.Fprintf(&b, "Time: %s - %s\n\n", start.Format("15:04"), end.Format("15:04"))
		b.WriteString("If you have any questions, please contact us.\n")
	default:
		subject = "Reservation Confirmation - " + r.Court.Name
		b.WriteString("Your reservation has been confirmed!\n\n")
		fmt.Fprintf(&b, "Court: %s\n", r.Court.Name)
		fmt.Fprintf(&b, "Address: %s, %s %s\n", r.Court.Street, r.Court.City, r.Court.PostalCode)
		fmt.Fprintf(&b, "Date: %s\n", start.Format("2006-01-02"))
		fmt.Fprintf(&b, "Time: %s - %s\n", start.Format("15:04"), end.Format("15:04"))
		fmt.Fprintf(&b, "Players: %d\n", r.PlayersCount)
		fmt.Fprintf(&b, "Total Amount: %s %s\n\n", r.TotalAmount.StringFixed(2), currencyOf(r))
		fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(r.Status))
		if r.AdditionalInfo != "" {
			fmt.Fprintf(&b, "\n%s\n", r.AdditionalInfo)
		}
		b.WriteString("\nThank you for choosing our tennis courts!\n")
	}

	id := r.ID
	return Message{
		Kind:          kind,
		To:            r.User.Email,
		Subject:       subject,
		Body:          b.String(),
		ReservationID: &id,
	}
}

func currencyOf(r models.Reservation) string {
	if r.Payment != nil && r.Payment.Currency != "" {
		return r.Payment.Currency
	}
	if p := r.Court.ActivePrice(); p != nil {
		return p.Currency
	}
	return "PLN"
}
