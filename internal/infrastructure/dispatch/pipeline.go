package dispatch

import (
	"context"

	"github.com/speedparts/storefront/internal/domain/order"
	"go.uber.org/zap"
)

// Status is the outcome of a dispatch attempt
type Status string

const (
	// StatusDispatched means every configured channel accepted the order
	StatusDispatched Status = "DISPATCHED"
	// StatusRemoteFailed means the remote submission failed and the mail
	// fallback was produced instead; the messaging link was still handed
	// out, so this is a degraded success rather than a hard failure.
	StatusRemoteFailed Status = "REMOTE_SUBMISSION_FAILED"
	// StatusNoRemote means no remote endpoint is configured and the mail
	// fallback was produced. Informational, not an error.
	StatusNoRemote Status = "NO_REMOTE_CONFIGURED"
)

// Report describes which channels fired and the links the presentation
// surface must open on the shopper's device.
type Report struct {
	Status       Status `json:"status"`
	WhatsAppLink string `json:"whatsapp_link"`
	MailtoLink   string `json:"mailto_link,omitempty"`
}

// Submitter is the remote submission channel
type Submitter interface {
	Submit(ctx context.Context, o *order.Order) error
}

// Pipeline renders an order into channel payloads and drives the
// multi-channel send-with-fallback sequence.
type Pipeline struct {
	sellerPhone string
	currency    string
	remote      Submitter // nil when no remote endpoint is configured
	log         *zap.Logger
}

// NewPipeline creates a dispatch pipeline. Pass a nil submitter when no
// remote endpoint is configured.
func NewPipeline(sellerPhone, currency string, remote Submitter, log *zap.Logger) *Pipeline {
	return &Pipeline{
		sellerPhone: sellerPhone,
		currency:    currency,
		remote:      remote,
		log:         log,
	}
}

// Dispatch renders the order and runs the channel sequence:
//
//  1. The messaging deep link always fires; whether the shopper's device
//     actually opens it is unobservable and never blocks later steps.
//  2. With a remote endpoint configured, the structured payload is
//     submitted; on failure the mail fallback takes its place.
//  3. Without one, the mail fallback always fires.
//
// Dispatch never fails partially: the caller clears the cart after it
// returns, whichever branch fired.
func (p *Pipeline) Dispatch(ctx context.Context, o *order.Order) Report {
	message := RenderMessage(o, p.currency)

	report := Report{
		WhatsAppLink: WhatsAppLink(p.sellerPhone, message),
	}

	if p.remote == nil {
		report.Status = StatusNoRemote
		report.MailtoLink = p.mailFallback(o, message)
		p.log.Info("Order dispatched without remote endpoint",
			zap.String("order_id", o.ID.String()),
		)
		return report
	}

	if err := p.remote.Submit(ctx, o); err != nil {
		report.Status = StatusRemoteFailed
		report.MailtoLink = p.mailFallback(o, message)
		p.log.Warn("Remote order submission failed, falling back to mail",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return report
	}

	report.Status = StatusDispatched
	p.log.Info("Order dispatched",
		zap.String("order_id", o.ID.String()),
	)
	return report
}

func (p *Pipeline) mailFallback(o *order.Order, message string) string {
	subject := "New Order from " + o.Customer.Name
	return MailtoLink(subject, StripMarkup(message))
}
