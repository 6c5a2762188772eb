package cart

import (
	"encoding/json"
)

// StorageKey is the key the cart is persisted under.
const StorageKey = "cart"

// LineItem is one product in the cart. The JSON shape is the persisted
// format and must stay stable.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

func (li LineItem) Subtotal() float64 {
	return li.UnitPrice * float64(li.Quantity)
}

// decodeItems parses persisted cart state. Lines with quantity below one
// are dropped and repeated ids are folded into the first occurrence.
func decodeItems(raw string) ([]LineItem, error) {
	var stored []LineItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, err
	}

	out := make([]LineItem, 0, len(stored))
	index := make(map[string]int, len(stored))
	for _, it := range stored {
		if it.Quantity < 1 {
			continue
		}
		if i, ok := index[it.ID]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ID] = len(out)
		out = append(out, it)
	}
	return out, nil
}

func encodeItems(items []LineItem) (string, error) {
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
