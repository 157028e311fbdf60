package console

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	appOrder "github.com/Zhima-Mochi/minishop-cli/internal/application/order"
	"github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
)

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatOrder(o *order.Order, total decimal.Decimal) string {
	return fmt.Sprintf("Order ID: %d | Date: %s | Total: %s", o.ID, o.CreatedAt.Format(time.RFC3339), formatMoney(total))
}

// formatLine renders one order line. Price is the product's current price.
func formatLine(l appOrder.LineDetail) string {
	return fmt.Sprintf("  - %s x%d @ %s", l.Name, l.Quantity, formatMoney(l.Price))
}
