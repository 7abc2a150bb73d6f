package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
	"time"
)

type ItfSmtp interface {
	SendConsentReceipt(userEmail string, fullName string, signedAt time.Time) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

// SendConsentReceipt mails the signed GDPR consent confirmation to the user
// and CCs the configured data-protection contact.
func (s *smtp) SendConsentReceipt(userEmail string, fullName string, signedAt time.Time) error {
	to := []string{userEmail}
	if contact := os.Getenv("GDPR_CONTACT_EMAIL"); contact != "" {
		to = append(to, contact)
	}

	message := []byte(fmt.Sprintf(
		"To: %s\r\nSubject: Confirmación de consentimiento - Espejo Virtual\r\n\r\n"+
			"Hola %s,\r\n\r\nHemos registrado tu consentimiento de protección de datos el %s.\r\n"+
			"Puedes retirarlo en cualquier momento desde los ajustes de la aplicación.\r\n",
		userEmail, fullName, signedAt.Format("02/01/2006 15:04")))

	if err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message); err != nil {
		return err
	}

	return nil
}
