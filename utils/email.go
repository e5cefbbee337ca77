package utils

import (
	"bytes"
	"html/template"
	"io"
	"strconv"

	"cab_booking/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type BookingConfirmationData struct {
	BookingCode string
	Route       string
	StartTime   string
	Seats       string
	TotalAmount float64
	PickupPoint string
	DropPoint   string
}

// SendBookingConfirmation renders the confirmation template and mails it
// with the booking QR embedded. Callers run it in a goroutine, failures
// are logged, never surfaced to the passenger.
func SendBookingConfirmation(to string, data BookingConfirmationData) {
	tmpl, err := template.ParseFiles("templates/booking_confirmation.html")
	if err != nil {
		logrus.Errorf("failed to load confirmation template: %v", err)
		return
	}

	var htmlBody bytes.Buffer
	if err := tmpl.Execute(&htmlBody, data); err != nil {
		logrus.Errorf("failed to render confirmation template: %v", err)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.ConfigDefault("SMTP_FROM", "bookings@cabbooking.local"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Booking confirmed - "+data.BookingCode)
	m.SetBody("text/html", htmlBody.String())

	qrBytes, err := GenerateQRCode(data.BookingCode, 256)
	if err == nil {
		m.Embed("booking_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(qrBytes)
			return err
		}), gomail.SetHeader(map[string][]string{
			"Content-Type":        {"image/png"},
			"Content-ID":          {"<booking_qr>"},
			"Content-Disposition": {"inline"},
		}))
	} else {
		logrus.Errorf("failed to generate booking QR for %s: %v", data.BookingCode, err)
	}

	port, err := strconv.Atoi(config.ConfigDefault("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	d := gomail.NewDialer(config.Config("SMTP_HOST"), port, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		logrus.Errorf("failed to send confirmation email to %s: %v", to, err)
		return
	}
	logrus.Infof("confirmation email sent to %s for %s", to, data.BookingCode)
}
