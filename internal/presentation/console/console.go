// Package console is the interactive text front end over the catalog and
// order use cases.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Zhima-Mochi/minishop-cli/internal/application"
	appOrder "github.com/Zhima-Mochi/minishop-cli/internal/application/order"
	"github.com/Zhima-Mochi/minishop-cli/internal/domain/catalog"
	"github.com/Zhima-Mochi/minishop-cli/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability"
	"github.com/Zhima-Mochi/minishop-cli/internal/observability/logctx"
)

// CatalogService is the set of catalog use cases the console drives.
type CatalogService interface {
	AddProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*catalog.Product, error)
	ListProducts(ctx context.Context) ([]*catalog.Product, error)
	FindByID(ctx context.Context, id int64) (*catalog.Product, error)
	FindByName(ctx context.Context, name string) (*catalog.Product, error)
	ProductAt(ctx context.Context, position int) (*catalog.Product, error)
	Rename(ctx context.Context, id int64, name string) (*catalog.Product, error)
	UpdatePrice(ctx context.Context, id int64, price decimal.Decimal) (*catalog.Product, error)
	UpdateStock(ctx context.Context, id int64, stock int) (*catalog.Product, error)
	RemoveByID(ctx context.Context, id int64, confirmed bool) (bool, error)
	RemoveAt(ctx context.Context, position int, confirmed bool) (bool, error)
}

// OrderService is the set of order use cases the console drives.
type OrderService interface {
	StartOrder(ctx context.Context) (*order.Order, error)
	AddLine(ctx context.Context, o *order.Order, productID int64, quantity int) error
	Total(o *order.Order) decimal.Decimal
	Lines(o *order.Order) []appOrder.LineDetail
	PlaceOrder(ctx context.Context, o *order.Order) (decimal.Decimal, error)
	ListOrders(ctx context.Context) ([]*order.Order, error)
}

const optionExit = 10

type action struct {
	name string
	run  func(ctx context.Context) error
}

type Console struct {
	in      *bufio.Reader
	out     io.Writer
	catalog CatalogService
	orders  OrderService
	logger  observability.Logger
	actions map[int]action
	// readErr is the first read failure other than end of input.
	readErr error
}

func New(in io.Reader, out io.Writer, catalog CatalogService, orders OrderService, logger observability.Logger, sessionID string) *Console {
	if logger == nil {
		logger = observability.NopLogger()
	}
	if sessionID != "" {
		logger = logger.With(observability.F("session_id", sessionID))
	}
	c := &Console{
		in:      bufio.NewReader(in),
		out:     out,
		catalog: catalog,
		orders:  orders,
		logger:  logger,
	}
	c.actions = map[int]action{
		1: {name: "add_product", run: c.addProduct},
		2: {name: "list_products", run: c.listProducts},
		3: {name: "find_update_product", run: c.findUpdateProduct},
		4: {name: "remove_product", run: c.removeProduct},
		5: {name: "create_order", run: c.createOrder},
		6: {name: "list_orders", run: c.listOrders},
	}
	return c
}

// Run serves the menu until the user exits or the input ends. It returns
// only read errors or context cancellation; end of input is a normal exit.
func (c *Console) Run(ctx context.Context) error {
	c.logger.Info("session_started")
	defer c.logger.Info("session_ended")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.printMenu()
		choice, err := c.askInt("Select an option: ")
		switch {
		case errors.Is(err, errInputClosed):
			c.println("")
			c.farewell()
			return c.readErr
		case err != nil:
			c.println("Invalid option, try again.")
			continue
		}

		if choice == optionExit {
			c.println("Exiting...")
			c.farewell()
			return nil
		}
		a, ok := c.actions[choice]
		if !ok {
			c.println("Invalid option, try again.")
			continue
		}

		actx := WithActionContext(ctx, c.logger, a.name)
		if err := a.run(actx); err != nil {
			if errors.Is(err, errInputClosed) {
				c.println("")
				c.farewell()
				return c.readErr
			}
			c.report(actx, err)
		}
	}
}

func (c *Console) addProduct(ctx context.Context) error {
	name, err := c.ask("Name: ")
	if err != nil {
		return err
	}
	price, err := c.askDecimal("Price: ")
	if err != nil {
		return err
	}
	stock, err := c.askInt("Stock: ")
	if err != nil {
		return err
	}
	if price.IsNegative() || stock < 0 {
		c.println("Negative values are not allowed.")
		return nil
	}

	p, err := c.catalog.AddProduct(ctx, name, price, stock)
	if err != nil {
		return err
	}
	c.println("Product added: " + p.String())
	return nil
}

func (c *Console) listProducts(ctx context.Context) error {
	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		c.println("No products in the list.")
		return nil
	}
	c.println("=== Products ===")
	for _, p := range products {
		c.println(p.String())
	}
	return nil
}

// findUpdateProduct gathers every answer before touching the product, so a
// malformed number aborts with nothing applied.
func (c *Console) findUpdateProduct(ctx context.Context) error {
	p, err := c.findProduct(ctx)
	if err != nil {
		return err
	}
	c.println("Found: " + p.String())

	var (
		newName  *string
		newPrice *decimal.Decimal
		newStock *int
	)
	if yes, err := c.confirm("Update name? (y/n): "); err != nil {
		return err
	} else if yes {
		name, err := c.ask("New name: ")
		if err != nil {
			return err
		}
		newName = &name
	}
	if yes, err := c.confirm("Update price? (y/n): "); err != nil {
		return err
	} else if yes {
		price, err := c.askDecimal("New price: ")
		if err != nil {
			return err
		}
		if price.IsNegative() {
			c.println("Invalid value.")
		} else {
			newPrice = &price
		}
	}
	if yes, err := c.confirm("Update stock? (y/n): "); err != nil {
		return err
	} else if yes {
		stock, err := c.askInt("New stock: ")
		if err != nil {
			return err
		}
		if stock < 0 {
			c.println("Invalid value.")
		} else {
			newStock = &stock
		}
	}

	if newName == nil && newPrice == nil && newStock == nil {
		c.println("No changes.")
		return nil
	}
	if newName != nil {
		if p, err = c.catalog.Rename(ctx, p.ID, *newName); err != nil {
			return err
		}
	}
	if newPrice != nil {
		if p, err = c.catalog.UpdatePrice(ctx, p.ID, *newPrice); err != nil {
			return err
		}
	}
	if newStock != nil {
		if p, err = c.catalog.UpdateStock(ctx, p.ID, *newStock); err != nil {
			return err
		}
	}
	c.println("Updated: " + p.String())
	return nil
}

func (c *Console) findProduct(ctx context.Context) (*catalog.Product, error) {
	mode, err := c.askInt("Search by ID (1) or name (2): ")
	if err != nil {
		return nil, err
	}
	switch mode {
	case 1:
		id, err := c.askID("ID: ")
		if err != nil {
			return nil, err
		}
		return c.catalog.FindByID(ctx, id)
	case 2:
		name, err := c.ask("Name: ")
		if err != nil {
			return nil, err
		}
		return c.catalog.FindByName(ctx, name)
	default:
		return nil, errInvalidChoice
	}
}

func (c *Console) removeProduct(ctx context.Context) error {
	mode, err := c.askInt("Remove by ID (1) or position (2): ")
	if err != nil {
		return err
	}

	var (
		target *catalog.Product
		remove func(confirmed bool) (bool, error)
	)
	switch mode {
	case 1:
		id, err := c.askID("ID: ")
		if err != nil {
			return err
		}
		if target, err = c.catalog.FindByID(ctx, id); err != nil {
			return err
		}
		remove = func(confirmed bool) (bool, error) { return c.catalog.RemoveByID(ctx, id, confirmed) }
	case 2:
		pos, err := c.askInt("Position (starting at 0): ")
		if err != nil {
			return err
		}
		if target, err = c.catalog.ProductAt(ctx, pos); err != nil {
			return err
		}
		remove = func(confirmed bool) (bool, error) { return c.catalog.RemoveAt(ctx, pos, confirmed) }
	default:
		return errInvalidChoice
	}

	c.println("Product: " + target.String())
	confirmed, err := c.confirm("Are you sure you want to remove it? (y/n): ")
	if err != nil {
		return err
	}
	removed, err := remove(confirmed)
	if err != nil {
		return err
	}
	if removed {
		c.println("Product removed.")
	} else {
		c.println("Removal cancelled.")
	}
	return nil
}

// createOrder builds one order line by line. A refused line is reported and
// the order kept; end of input places whatever has been added so far.
func (c *Console) createOrder(ctx context.Context) error {
	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		c.println("No products in the list.")
		return nil
	}

	o, err := c.orders.StartOrder(ctx)
	if err != nil {
		return err
	}
	logctx.FromOr(ctx, c.logger).Debug("order_started", observability.F("order_id", o.ID))

	for {
		if err := c.listProducts(ctx); err != nil {
			return err
		}
		pid, err := c.askID("Product ID to add: ")
		if errors.Is(err, errInputClosed) {
			return c.closeOrder(ctx, o, err)
		}
		if err == nil {
			if _, ferr := c.catalog.FindByID(ctx, pid); ferr != nil {
				c.report(ctx, ferr)
				continue
			}
			var qty int
			qty, err = c.askInt("Quantity: ")
			if errors.Is(err, errInputClosed) {
				return c.closeOrder(ctx, o, err)
			}
			if err == nil {
				err = c.orders.AddLine(ctx, o, pid, qty)
			}
		}
		// A malformed id or quantity does not abandon the order: lines already
		// added hold deducted stock, so the user decides whether to go on.
		if err != nil {
			c.report(ctx, err)
		} else {
			c.println("Product added to order.")
		}

		more, err := c.confirm("Add another product? (y/n): ")
		if err != nil {
			return c.closeOrder(ctx, o, err)
		}
		if !more {
			break
		}
	}
	return c.closeOrder(ctx, o, nil)
}

// closeOrder places o and prints its summary, then returns cause.
func (c *Console) closeOrder(ctx context.Context, o *order.Order, cause error) error {
	total, err := c.orders.PlaceOrder(ctx, o)
	if err != nil {
		return errors.Join(cause, err)
	}
	if cause != nil {
		c.println("")
	}
	c.println(fmt.Sprintf("Order %d placed. Total: %s", o.ID, formatMoney(total)))
	return cause
}

func (c *Console) listOrders(ctx context.Context) error {
	orders, err := c.orders.ListOrders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		c.println("No orders placed.")
		return nil
	}
	c.println("=== Orders ===")
	for _, o := range orders {
		c.println(formatOrder(o, c.orders.Total(o)))
		for _, l := range c.orders.Lines(o) {
			c.println(formatLine(l))
		}
	}
	return nil
}

// report prints the user-facing message for a recoverable failure and logs
// anything unexpected.
func (c *Console) report(ctx context.Context, err error) {
	var stockErr *order.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		c.println("Insufficient stock for product: " + stockErr.ProductName)
	case errors.Is(err, errMalformed):
		c.println("Invalid input.")
	case errors.Is(err, errInvalidChoice):
		c.println("Invalid option.")
	case errors.Is(err, catalog.ErrInvalidPosition):
		c.println("Invalid position.")
	case errors.Is(err, catalog.ErrInvalidPrice), errors.Is(err, catalog.ErrInvalidStock):
		c.println("Invalid value.")
	case errors.Is(err, order.ErrInvalidQuantity), errors.Is(err, catalog.ErrInvalidQuantity):
		c.println("Quantity must be greater than zero.")
	case application.KindOf(err) == application.KindNotFound:
		c.println("Product not found.")
	default:
		logctx.FromOr(ctx, c.logger).Error("action_failed", observability.F("error", err))
		c.println("Error: " + err.Error())
	}
}

func (c *Console) printMenu() {
	c.println("")
	c.println("=== Menu ===")
	c.println("1. Add product")
	c.println("2. List products")
	c.println("3. Find/update product")
	c.println("4. Remove product")
	c.println("5. Create order")
	c.println("6. List orders")
	c.println("10. Exit")
}

func (c *Console) farewell() {
	c.println("Thanks for using the system!")
}

func (c *Console) print(s string) {
	_, _ = io.WriteString(c.out, s)
}

func (c *Console) println(s string) {
	_, _ = io.WriteString(c.out, s+"\n")
}
