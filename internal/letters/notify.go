package letters

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/mail"
)

// Notifier hears about letters opened by the reveal rule. Letters opened by
// hand are not announced.
type Notifier interface {
	LetterRevealed(ctx context.Context, l Letter)
}

type NopNotifier struct{}

func (NopNotifier) LetterRevealed(context.Context, Letter) {}

const revealedTemplate = "letter_revealed.html"

// MailNotifier emails the recipient of an opened letter.
type MailNotifier struct {
	mailer  *mail.Mailer
	emails  map[string]string
	siteURL string
	log     zerolog.Logger
}

// NewMailNotifier maps participant names to addresses through emails.
func NewMailNotifier(mailer *mail.Mailer, emails map[string]string, siteURL string, log zerolog.Logger) *MailNotifier {
	return &MailNotifier{
		mailer:  mailer,
		emails:  emails,
		siteURL: siteURL,
		log:     log.With().Str("notifier", "mail").Logger(),
	}
}

func (n *MailNotifier) LetterRevealed(_ context.Context, l Letter) {
	to, subject, data, ok := n.message(l)
	if !ok {
		n.log.Debug().Str("to", l.To).Msg("no address or mailer, skipping")
		return
	}

	go func() {
		if err := n.mailer.SendHTML(to, subject, revealedTemplate, data); err != nil {
			n.log.Error().Err(err).Str("id", l.ID).Msg("failed to send reveal mail")
			return
		}
		n.log.Info().Str("id", l.ID).Str("email", to).Msg("reveal mail sent")
	}()
}

func (n *MailNotifier) message(l Letter) (string, string, map[string]string, bool) {
	to, ok := n.emails[l.To]
	if !ok || !n.mailer.Enabled() {
		return "", "", nil, false
	}

	revealDate := ""
	if l.RevealDate != nil {
		revealDate = l.RevealDate.String()
	}
	data := map[string]string{
		"To":          l.To,
		"From":        l.From,
		"DateWritten": l.DateWritten.String(),
		"RevealDate":  revealDate,
		"SiteURL":     n.siteURL,
	}
	return to, fmt.Sprintf("A letter from %s just opened", l.From), data, true
}
