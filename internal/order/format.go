// Package order turns a cart snapshot into the chat-ready order message
// that checkout hands to the messaging links.
package order

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/MasuRii/Luv-Charms-E-commerce/internal/cart"
)

// CurrencySymbol is the canonical currency presentation for the whole
// storefront. The catalog prices in PHP, so the order text does too.
const CurrencySymbol = "₱"

const divider = 40

// Options customize a Formatter. Zero values fall back to the wall clock,
// the shared rand source, and the canonical shop presentation.
type Options struct {
	Now            func() time.Time
	Rand           *rand.Rand
	ShopName       string
	CurrencySymbol string
}

type Formatter struct {
	now      func() time.Time
	rand     *rand.Rand
	shopName string
	currency string
}

func NewFormatter(opts Options) *Formatter {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	shopName := opts.ShopName
	if shopName == "" {
		shopName = "Luv's Charms"
	}
	currency := opts.CurrencySymbol
	if currency == "" {
		currency = CurrencySymbol
	}
	return &Formatter{now: now, rand: r, shopName: shopName, currency: currency}
}

// ReferenceID generates a display label of the form #ORD-YYMMDD-XXXX with
// a fresh 4-digit random suffix. It is not guaranteed unique; it only
// gives shopper and shop owner a shared handle on one message.
func (f *Formatter) ReferenceID() string {
	now := f.now()
	suffix := 1000 + f.rand.Intn(9000)
	return fmt.Sprintf("#ORD-%02d%02d%02d-%d", now.Year()%100, int(now.Month()), now.Day(), suffix)
}

// FormatOrder renders the cart items and the caller-supplied total as a
// message ready to paste into a chat app. The total is authoritative; it
// is not recomputed from the items.
func (f *Formatter) FormatOrder(items []cart.LineItem, totalPrice float64) string {
	return f.formatWithReference(items, totalPrice, f.ReferenceID())
}

// Format renders the message like FormatOrder and also returns the
// reference id embedded in it.
func (f *Formatter) Format(items []cart.LineItem, totalPrice float64) (message, referenceID string) {
	referenceID = f.ReferenceID()
	return f.formatWithReference(items, totalPrice, referenceID), referenceID
}

func (f *Formatter) formatWithReference(items []cart.LineItem, totalPrice float64, referenceID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛍️ *New Order from %s!*\n\n", f.shopName)
	fmt.Fprintf(&b, "📋 *Order Reference:* %s\n", referenceID)
	fmt.Fprintf(&b, "📅 *Date:* %s\n\n", f.now().Format("1/2/2006"))

	b.WriteString("*Items:*\n")
	b.WriteString(strings.Repeat("─", divider) + "\n")

	for i, it := range items {
		lineTotal := it.Price * float64(it.Quantity)
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, it.Name)
		fmt.Fprintf(&b, "   Qty: %d × %s%.2f = %s%.2f\n\n", it.Quantity, f.currency, it.Price, f.currency, lineTotal)
	}

	b.WriteString(strings.Repeat("─", divider) + "\n")
	fmt.Fprintf(&b, "*Total: %s%.2f*\n\n", f.currency, totalPrice)

	b.WriteString("📞 Please confirm availability and delivery details.\n")
	fmt.Fprintf(&b, "Thank you for shopping with %s! 💕", f.shopName)

	return b.String()
}
