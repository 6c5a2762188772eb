package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/chat"
)

func populatedView() cart.View {
	return cart.View{
		CheckoutEnabled: true,
		Count:           3,
		Rows: []cart.Row{
			{ProductID: "p1", Name: "Widget", UnitPrice: 10, Quantity: 3, LineSubtotal: 30},
		},
		Totals: cart.ComputeTotals(30),
	}
}

func emptyView() cart.View {
	return cart.View{
		Empty:        true,
		EmptyMessage: cart.EmptyMessage,
		ContinueURL:  cart.ContinueURL,
		Totals:       cart.ComputeTotals(0),
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0.00", Money(0))
	assert.Equal(t, "$9.99", Money(9.99))
	assert.Equal(t, "$3.00", Money(3))
}

func TestCartHTMLPopulated(t *testing.T) {
	out, err := CartHTML(populatedView())
	require.NoError(t, err)

	assert.Contains(t, out, `<h3 class="font-medium">Widget</h3>`)
	assert.Contains(t, out, `$10.00 × 3`)
	assert.Contains(t, out, `data-product-id="p1"`)
	assert.Contains(t, out, `<dd id="subtotal">$30.00</dd>`)
	assert.Contains(t, out, `<dd id="tax">$3.00</dd>`)
	assert.Contains(t, out, `<dd id="total">$33.00</dd>`)
	assert.Contains(t, out, `<span id="cart-count">3</span>`)
	assert.Contains(t, out, `<button id="checkout-button">Checkout</button>`)
	assert.NotContains(t, out, cart.EmptyMessage)
}

func TestCartHTMLEmpty(t *testing.T) {
	out, err := CartHTML(emptyView())
	require.NoError(t, err)

	assert.Contains(t, out, "Your cart is empty")
	assert.Contains(t, out, `href="/products"`)
	assert.Contains(t, out, `Continue Shopping`)
	assert.Contains(t, out, `<button id="checkout-button" disabled>Checkout</button>`)
	assert.Contains(t, out, `<dd id="total">$0.00</dd>`)
}

func TestCartHTMLEscapesNames(t *testing.T) {
	v := populatedView()
	v.Rows[0].Name = `<script>alert(1)</script>`

	out, err := CartHTML(v)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestCartTerminal(t *testing.T) {
	out := CartTerminal(populatedView())
	for _, want := range []string{"Widget", "p1", "$10.00", "$30.00", "$3.00", "$33.00"} {
		assert.Contains(t, out, want)
	}

	empty := CartTerminal(emptyView())
	assert.Contains(t, empty, cart.EmptyMessage)
	assert.Contains(t, empty, "/products")
}

func TestTranscriptTerminal(t *testing.T) {
	out := TranscriptTerminal([]chat.Message{
		{Role: chat.RoleAssistant, Text: chat.Greeting},
		{Role: chat.RoleUser, Text: "widgets?"},
	}, 100)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "shopping assistant")
	assert.Contains(t, lines[1], "widgets?")
	assert.True(t, strings.HasPrefix(lines[1], " "), "user messages are right-aligned")
}
