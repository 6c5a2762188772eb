package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/chat"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = lipgloss.NewStyle().Bold(true)

	userBubble = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(0, 1)
	assistantBubble = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1F2937")).
			Background(lipgloss.Color("#F3F4F6")).
			Padding(0, 1)
)

// CartTerminal renders the cart as a table followed by the totals block.
func CartTerminal(v cart.View) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Cart"))
	sb.WriteString(mutedStyle.Render(" (" + strconv.Itoa(v.Count) + " items)"))
	sb.WriteString("\n")

	if v.Empty {
		sb.WriteString(v.EmptyMessage)
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("Continue shopping: " + v.ContinueURL))
		sb.WriteString("\n")
		return sb.String()
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Product", "Price", "Qty", "Subtotal").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range v.Rows {
		t.Row(r.ProductID, r.Name, Money(r.UnitPrice), strconv.Itoa(r.Quantity), Money(r.LineSubtotal))
	}
	sb.WriteString(t.Render())
	sb.WriteString("\n")

	sb.WriteString("Subtotal: " + Money(v.Totals.Subtotal) + "\n")
	sb.WriteString("Tax:      " + Money(v.Totals.Tax) + "\n")
	sb.WriteString(totalStyle.Render("Total:    "+Money(v.Totals.Total)) + "\n")
	return sb.String()
}

// MessageTerminal renders one transcript line, user messages right-aligned
// within width.
func MessageTerminal(m chat.Message, width int) string {
	if m.FromUser() {
		bubble := userBubble.Render(m.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	return assistantBubble.Render(m.Text)
}

func TranscriptTerminal(msgs []chat.Message, width int) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, MessageTerminal(m, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
