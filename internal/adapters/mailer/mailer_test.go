package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/domain"
)

func testBooking() domain.Booking {
	sr := "Late arrival"
	return domain.Booking{
		ID:              17,
		CheckIn:         time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:        time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		NumberOfGuests:  2,
		TotalPrice:      200,
		Status:          domain.StatusPending,
		GuestName:       "Ana <script>",
		GuestEmail:      "ana@example.com",
		SpecialRequests: &sr,
	}
}

func TestBookingConfirmation_Message(t *testing.T) {
	var gotTo []string
	var gotMsg []byte
	m := New("smtp.example.com:587", "u", "p", "bookings@example.com", 5)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotTo = to
		gotMsg = msg
		return nil
	}

	if err := m.BookingConfirmation(context.Background(), testBooking()); err != nil {
		t.Fatalf("BookingConfirmation: %v", err)
	}
	if len(gotTo) != 1 || gotTo[0] != "ana@example.com" {
		t.Fatalf("unexpected recipient: %v", gotTo)
	}
	body := string(gotMsg)
	for _, want := range []string{
		"Subject: Booking Confirmation - Hotel Management System",
		"Booking ID:</strong> 17",
		"2024-06-01",
		"2024-06-03",
		"$200.00",
		"Late arrival",
		"Ana &lt;script&gt;", // guest input is escaped
	} {
		if !strings.Contains(body, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestBookingCancellation_Message(t *testing.T) {
	var gotMsg []byte
	m := New("smtp.example.com:587", "", "", "bookings@example.com", 5)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotMsg = msg
		return nil
	}

	if err := m.BookingCancellation(context.Background(), testBooking()); err != nil {
		t.Fatalf("BookingCancellation: %v", err)
	}
	if !strings.Contains(string(gotMsg), "Subject: Booking Cancellation - Hotel Management System") {
		t.Fatal("missing cancellation subject")
	}
}
