package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"forfly/internal/data/entity"
	"forfly/pkg/utils"
)

// Mailer delivers a booking confirmation. Transport, retries and the rest of
// the delivery mechanics live behind this interface; the core only supplies
// the finalized booking.
type Mailer interface {
	Send(ctx context.Context, booking entity.Booking) error
}

// SMTPMailer sends the confirmation over SMTP with implicit TLS.
type SMTPMailer struct {
	config utils.EmailConfig
}

func NewSMTPMailer(config utils.EmailConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) Send(ctx context.Context, booking entity.Booking) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.config.Host})
	if err != nil {
		return fmt.Errorf("connect to SMTP server %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("open SMTP session: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth: %w", err)
	}

	if err := client.Mail(m.config.From); err != nil {
		return fmt.Errorf("SMTP MAIL FROM: %w", err)
	}
	if err := client.Rcpt(booking.Email); err != nil {
		return fmt.Errorf("SMTP RCPT TO %s: %w", booking.Email, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA: %w", err)
	}
	if _, err := w.Write([]byte(buildMessage(m.config.From, booking))); err != nil {
		return fmt.Errorf("write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message body: %w", err)
	}

	return client.Quit()
}

func buildMessage(from string, b entity.Booking) string {
	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + b.Email + "\r\n")
	msg.WriteString("Subject: Your ForFly Booking Confirmation\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(ConfirmationBody(b))
	return msg.String()
}

// ConfirmationBody renders the confirmation message from the booking record.
// Every persisted field of the booking appears here; this is the data
// contract with the mailer.
func ConfirmationBody(b entity.Booking) string {
	return fmt.Sprintf(`<html>
<body>
    <p>Dear %s,</p>

    <p>Your booking to <strong>%s</strong> has been confirmed!</p>

    <p>
        <strong><u>Here are your flight details:</u></strong><br>
        From: %s to %s<br>
        Flight Number: %s<br>
        Departure: %s on %s<br>
        Arrival: %s<br>
        Class: %s<br>
        Ticket Type: %s
    </p>

    <p>
        <strong><u>Passenger Details:</u></strong><br>
        Passenger Name: %s (age %d)<br>
        Address: %s<br>
        Email: %s<br>
        Contact Number: %s
    </p>

    <p><strong>Total Paid: $%.2f</strong></p>

    <p>Thank you for booking with ForFly, and enjoy your flight!<br>
    The team at ForFly</p>
</body>
</html>`,
		b.PassengerName,
		b.Destination,
		b.Origin, b.Destination,
		b.FlightNumber,
		b.DepartureTime, b.FlightDate,
		b.ArrivalTime,
		b.Class,
		b.TicketType,
		b.PassengerName, b.PassengerAge,
		b.Address,
		b.Email,
		b.PhoneNumber,
		b.Fare,
	)
}
