// Package render turns view models into markup for the page host and
// styled text for the terminal.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
)

var funcs = template.FuncMap{
	"money": Money,
}

var cartTmpl = template.Must(template.New("storefront").Funcs(funcs).Parse(`
{{- define "items" -}}
<div id="cart-items">
{{- if .Empty }}
    <div class="text-center py-8">
        <p class="text-gray-500 mb-4">{{ .EmptyMessage }}</p>
        <a href="{{ .ContinueURL }}" class="text-blue-500 hover:text-blue-600">Continue Shopping</a>
    </div>
{{- else }}
{{- range .Rows }}
    <div class="flex items-center justify-between py-4 border-b last:border-0">
        <div>
            <h3 class="font-medium">{{ .Name }}</h3>
            <p class="text-sm text-gray-500">{{ money .UnitPrice }} × {{ .Quantity }}</p>
        </div>
        <div class="flex items-center space-x-4">
            <span class="font-medium">{{ money .LineSubtotal }}</span>
            <button class="remove-from-cart-btn text-red-500 hover:text-red-600"
                    data-product-id="{{ .ProductID }}">
                Remove
            </button>
        </div>
    </div>
{{- end }}
{{- end }}
</div>
{{- end -}}

{{- define "cart" -}}
<span id="cart-count">{{ .Count }}</span>
{{ template "items" . }}
<dl class="cart-totals">
    <dt>Subtotal</dt><dd id="subtotal">{{ money .Totals.Subtotal }}</dd>
    <dt>Tax</dt><dd id="tax">{{ money .Totals.Tax }}</dd>
    <dt>Total</dt><dd id="total">{{ money .Totals.Total }}</dd>
</dl>
<button id="checkout-button"{{ if not .CheckoutEnabled }} disabled{{ end }}>Checkout</button>
{{- end -}}
`))

// Money formats an amount with two decimals and a dollar sign.
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// CartHTML renders the cart fragment: count badge, items, totals and the
// checkout control.
func CartHTML(v cart.View) (string, error) {
	var buf bytes.Buffer
	if err := cartTmpl.ExecuteTemplate(&buf, "cart", v); err != nil {
		return "", fmt.Errorf("render cart: %w", err)
	}
	return buf.String(), nil
}
