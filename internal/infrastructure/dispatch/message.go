package dispatch

import (
	"fmt"
	"strings"

	"github.com/speedparts/storefront/internal/domain/order"
)

// RenderMessage builds the human-readable order message sent through the
// messaging and mail channels. The lightweight *bold* markup is understood
// by the messaging channel; the mail fallback strips it.
func RenderMessage(o *order.Order, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New Order from %s*\n\n", o.Customer.Name)
	fmt.Fprintf(&b, "*Customer:* %s\n", o.Customer.Name)
	fmt.Fprintf(&b, "*Phone:* %s\n\n", o.Customer.Phone)
	b.WriteString("*Items:*\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "- %s (#%s) x %d @ %s %s\n",
			item.Name, item.PartNumber, item.Quantity, currency, item.UnitPrice.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n*Subtotal: %s %s*\n\n", currency, o.Total.StringFixed(2))
	fmt.Fprintf(&b, "*Delivery Method:* %s\n", o.Delivery.Method())
	if address, ok := o.Delivery.Address(); ok {
		fmt.Fprintf(&b, "*Address:* %s\n", address)
	}
	if o.Notes != "" {
		fmt.Fprintf(&b, "*Notes:* %s\n", o.Notes)
	}

	return b.String()
}

// StripMarkup removes the messaging markup from a rendered message,
// producing the plain-text variant used for mail bodies.
func StripMarkup(message string) string {
	return strings.ReplaceAll(message, "*", "")
}
