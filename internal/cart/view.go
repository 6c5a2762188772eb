package cart

const (
	EmptyMessage = "Your cart is empty"
	ContinueURL  = "/products"
)

type Row struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	UnitPrice    float64 `json:"unitPrice"`
	Quantity     int     `json:"quantity"`
	LineSubtotal float64 `json:"lineSubtotal"`
}

// View describes what the cart page shows. Renderers in internal/render
// turn it into markup or terminal output.
type View struct {
	Empty           bool   `json:"empty"`
	EmptyMessage    string `json:"emptyMessage,omitempty"`
	ContinueURL     string `json:"continueUrl,omitempty"`
	CheckoutEnabled bool   `json:"checkoutEnabled"`
	Count           int    `json:"count"`
	Rows            []Row  `json:"rows"`
	Totals          Totals `json:"totals"`
}

func buildView(items []LineItem) View {
	if len(items) == 0 {
		return View{
			Empty:        true,
			EmptyMessage: EmptyMessage,
			ContinueURL:  ContinueURL,
			Rows:         []Row{},
			Totals:       ComputeTotals(0),
		}
	}

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			ProductID:    it.ID,
			Name:         it.Name,
			UnitPrice:    it.UnitPrice,
			Quantity:     it.Quantity,
			LineSubtotal: it.Subtotal(),
		})
	}
	return View{
		CheckoutEnabled: true,
		Count:           countOf(items),
		Rows:            rows,
		Totals:          ComputeTotals(subtotalOf(items)),
	}
}
