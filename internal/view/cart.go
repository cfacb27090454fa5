package view

import (
	"context"
	"strconv"
	"strings"

	"marketfront/internal/api"
	"marketfront/internal/domain"
	"marketfront/internal/session"

	"go.uber.org/zap"
)

// CartController renders the authenticated user's cart. The cart is
// fetched on page entry only; adding lines elsewhere shows up on the
// next visit, matching the server-as-single-source-of-truth policy.
type CartController struct {
	gw      *api.Gateway
	session *session.Store
	ui      *UI
	navbar  *Navbar
	prices  *PriceFormatter
	logger  *zap.Logger

	seq  sequencer
	cart domain.Cart
}

func NewCartController(gw *api.Gateway, store *session.Store, ui *UI, navbar *Navbar, prices *PriceFormatter, logger *zap.Logger) *CartController {
	return &CartController{gw: gw, session: store, ui: ui, navbar: navbar, prices: prices, logger: logger}
}

func (c *CartController) Show(ctx context.Context) Page {
	c.navbar.Refresh()
	if c.session.State() == session.StateAnonymous {
		return PageLogin
	}

	c.load(ctx)

	for {
		input := c.ui.Command("cart")
		switch {
		case input == "":
			continue
		case strings.HasPrefix(input, "remove"):
			c.removeLine(ctx, input)
		default:
			if page, ok := c.navbar.Navigate(input); ok {
				return page
			}
			c.ui.Alert(AlertWarning, "Unknown command")
		}
	}
}

func (c *CartController) load(ctx context.Context) {
	ticket := c.seq.next()
	c.ui.Say("Loading...")

	cart, err := c.gw.Cart(ctx)
	if !c.seq.isCurrent(ticket) {
		return
	}

	if err != nil {
		c.cart = domain.Cart{}
		c.ui.Say("Failed to load cart")
		return
	}

	c.cart = cart
	if cart.Empty() {
		c.ui.Say("Cart is empty")
		return
	}

	for i, line := range cart.Lines {
		c.ui.Say("%2d. %s x %d — %s each — %s", i+1, line.Name, line.Qty,
			c.prices.Format(line.Price), c.prices.Format(line.Subtotal()))
	}
	c.ui.Say("Total: %s", c.prices.Format(cart.Total()))
}

// removeLine deletes one cart line after confirmation, then re-fetches
// the whole cart rather than patching the rendered copy.
func (c *CartController) removeLine(ctx context.Context, input string) {
	row := strings.TrimSpace(strings.TrimPrefix(input, "remove"))
	if row == "" {
		row = c.ui.Ask("Line number")
	}
	idx, err := strconv.Atoi(row)
	if err != nil || idx < 1 || idx > len(c.cart.Lines) {
		c.ui.Alert(AlertWarning, "No such line")
		return
	}

	if !c.ui.Confirm("Remove this item?") {
		return
	}

	line := c.cart.Lines[idx-1]
	if err := c.gw.RemoveFromCart(ctx, line.ItemID); err != nil {
		kind, msg := alertFor(err)
		c.ui.Alert(kind, msg)
		return
	}
	c.load(ctx)
}
