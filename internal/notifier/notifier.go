// Package notifier sends transactional customer emails.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
)

// Email is one outgoing message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers emails through some provider.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// LogSender is a Sender for environments without a real provider: it only
// logs the message.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a logging sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the email instead of delivering it.
func (s *LogSender) Send(ctx context.Context, email Email) error {
	s.logger.InfoContext(ctx, "mock email sent",
		slog.String("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}

// Notifier builds and sends the store's customer emails.
type Notifier struct {
	sender   Sender
	siteName string
}

// New creates a notifier over the given sender.
func New(sender Sender, siteName string) *Notifier {
	return &Notifier{sender: sender, siteName: siteName}
}

// SendRefundRequest asks a customer for their bank details after their
// order was cancelled.
func (n *Notifier) SendRefundRequest(ctx context.Context, orderID, customerEmail string) error {
	if customerEmail == "" {
		return nil
	}

	body := fmt.Sprintf(`Hola,

Lamentamos informarte que tuvimos que cancelar tu pedido #%s.

Para proceder con la devolución de tu dinero, necesitamos que nos envíes los siguientes datos:
- CBU / CVU:
- Alias:
- Banco / Billetera:
- Nombre del Titular:

Te responderemos a la brevedad con el comprobante de transferencia.

Disculpá las molestias.
Equipo %s
`, orderID, n.siteName)

	email := Email{
		To:      customerEmail,
		Subject: fmt.Sprintf("Reembolso Pedido #%s - %s", orderID, n.siteName),
		Body:    body,
	}
	if err := n.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("send refund request email: %w", err)
	}
	return nil
}
