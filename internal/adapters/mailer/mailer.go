package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"golang.org/x/time/rate"

	"hotel_booking/internal/domain"
)

// Mailer sends booking emails over SMTP. Outbound sends are rate limited so
// a burst of bookings cannot trip the provider's throttling.
type Mailer struct {
	addr string // host:port
	host string
	user string
	pass string
	from string
	rl   *rate.Limiter

	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(addr, user, pass, from string, rps int) *Mailer {
	if rps <= 0 {
		rps = 1
	}
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	return &Mailer{
		addr: addr,
		host: host,
		user: user,
		pass: pass,
		from: from,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		send: smtp.SendMail,
	}
}

func (m *Mailer) BookingConfirmation(ctx context.Context, b domain.Booking) error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4CAF50;">Booking Confirmation</h2>
  <p>Dear %s,</p>
  <p>Your booking has been received! Here are your booking details:</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Booking ID:</strong> %d</p>
    <p><strong>Check-in Date:</strong> %s</p>
    <p><strong>Check-out Date:</strong> %s</p>
    <p><strong>Number of Guests:</strong> %d</p>
    <p><strong>Total Price:</strong> $%.2f</p>
    <p><strong>Status:</strong> %s</p>
  </div>%s
  <p>We look forward to welcoming you!</p>
  <p>Best regards,<br>Hotel Management Team</p>
</div>`,
		html(b.GuestName), b.ID,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"),
		b.NumberOfGuests, b.TotalPrice, b.Status, specialRequests(b))
	return m.deliver(ctx, b.GuestEmail, "Booking Confirmation - Hotel Management System", body)
}

func (m *Mailer) BookingCancellation(ctx context.Context, b domain.Booking) error {
	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f44336;">Booking Cancellation</h2>
  <p>Dear %s,</p>
  <p>Your booking has been cancelled.</p>
  <div style="background-color: #f5f5f5; padding: 20px; border-radius: 5px; margin: 20px 0;">
    <p><strong>Booking ID:</strong> %d</p>
    <p><strong>Check-in Date:</strong> %s</p>
    <p><strong>Check-out Date:</strong> %s</p>
  </div>
  <p>We hope to see you another time.</p>
  <p>Best regards,<br>Hotel Management Team</p>
</div>`,
		html(b.GuestName), b.ID,
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"))
	return m.deliver(ctx, b.GuestEmail, "Booking Cancellation - Hotel Management System", body)
}

func (m *Mailer) deliver(ctx context.Context, to, subject, body string) error {
	if err := m.rl.Wait(ctx); err != nil {
		return err
	}
	msg := []byte("MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return m.send(m.addr, auth, m.from, []string{to}, msg)
}

func specialRequests(b domain.Booking) string {
	if b.SpecialRequests == nil || strings.TrimSpace(*b.SpecialRequests) == "" {
		return ""
	}
	return fmt.Sprintf("\n  <p><strong>Special Requests:</strong> %s</p>", html(*b.SpecialRequests))
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func html(s string) string { return htmlEscaper.Replace(s) }
