package view

import (
	"context"
	"strconv"
	"strings"

	"marketfront/internal/api"
	"marketfront/internal/domain"
	"marketfront/internal/session"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// alertFor classifies an error for inline rendering. Application and
// network failures both stay on the page; neither is fatal.
func alertFor(err error) (AlertKind, string) {
	if apiErr, ok := api.AsAPIError(err); ok {
		return AlertDanger, apiErr.Message
	}
	if api.IsNetworkError(err) {
		return AlertDanger, "Network error"
	}
	return AlertDanger, err.Error()
}

// HomeController drives the landing page: category filter plus the
// item listing with add-to-cart per row.
type HomeController struct {
	gw      *api.Gateway
	session *session.Store
	ui      *UI
	navbar  *Navbar
	prices  *PriceFormatter
	logger  *zap.Logger

	seq        sequencer
	filter     api.ItemFilter
	categories []domain.Category
	items      []domain.Item
}

func NewHomeController(gw *api.Gateway, store *session.Store, ui *UI, navbar *Navbar, prices *PriceFormatter, logger *zap.Logger) *HomeController {
	return &HomeController{gw: gw, session: store, ui: ui, navbar: navbar, prices: prices, logger: logger}
}

// Show loads the page and handles interactions until the user picks a
// navigation target.
func (c *HomeController) Show(ctx context.Context) Page {
	c.navbar.Refresh()
	c.loadInitial(ctx)

	for {
		input := c.ui.Command("home")
		switch {
		case input == "":
			continue
		case input == "filter":
			c.promptFilter()
			c.loadItems(ctx)
		case input == "clear":
			c.filter = api.ItemFilter{}
			c.loadItems(ctx)
		case strings.HasPrefix(input, "add"):
			if page, redirect := c.addToCart(ctx, input); redirect {
				return page
			}
		default:
			if page, ok := c.navbar.Navigate(input); ok {
				return page
			}
			c.ui.Alert(AlertWarning, "Unknown command")
		}
	}
}

// loadInitial fetches categories and items concurrently. A category
// failure only loses the filter options; the item listing decides the
// page state.
func (c *HomeController) loadInitial(ctx context.Context) {
	ticket := c.seq.next()

	var (
		cats    []domain.Category
		items   []domain.Item
		itemErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if cats, err = c.gw.Categories(gctx); err != nil {
			c.logger.Warn("Could not load categories", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		items, itemErr = c.gw.Items(gctx, c.filter)
		return nil
	})
	g.Wait()

	if !c.seq.isCurrent(ticket) {
		return
	}

	c.categories = cats
	c.renderFilter()
	c.renderItems(items, itemErr)
}

// loadItems refetches the listing only, for filter changes.
func (c *HomeController) loadItems(ctx context.Context) {
	ticket := c.seq.next()
	c.ui.Say("Loading...")

	items, err := c.gw.Items(ctx, c.filter)
	if !c.seq.isCurrent(ticket) {
		// A newer reload already owns the page
		return
	}
	c.renderItems(items, err)
}

func (c *HomeController) renderFilter() {
	c.ui.Say("Categories: [0] All categories")
	for i, cat := range c.categories {
		c.ui.Say("  [%d] %s", i+1, cat.Name)
	}
}

func (c *HomeController) renderItems(items []domain.Item, err error) {
	if err != nil {
		c.items = nil
		c.ui.Say("Failed to load items")
		return
	}
	c.items = items

	if len(items) == 0 {
		c.ui.Say("No items")
		return
	}

	for i, item := range items {
		c.ui.Say("%2d. %s — %s — %s", i+1, item.Name, item.CategoryName, c.prices.Format(item.Price))
	}
}

func (c *HomeController) promptFilter() {
	choice := c.ui.Ask("Category number (0 for all)")
	c.filter.CategoryID = ""
	if idx, err := strconv.Atoi(choice); err == nil && idx >= 1 && idx <= len(c.categories) {
		c.filter.CategoryID = c.categories[idx-1].ID
	}
	c.filter.MinPrice = c.ui.Ask("Min price")
	c.filter.MaxPrice = c.ui.Ask("Max price")
}

// addToCart handles "add <row>". An anonymous user is sent to the
// login page instead.
func (c *HomeController) addToCart(ctx context.Context, input string) (Page, bool) {
	if c.session.State() == session.StateAnonymous {
		c.ui.Alert(AlertWarning, "Please login")
		return PageLogin, true
	}

	row := strings.TrimSpace(strings.TrimPrefix(input, "add"))
	if row == "" {
		row = c.ui.Ask("Item number")
	}
	idx, err := strconv.Atoi(row)
	if err != nil || idx < 1 || idx > len(c.items) {
		c.ui.Alert(AlertWarning, "No such item")
		return 0, false
	}

	item := c.items[idx-1]
	if err := c.gw.AddToCart(ctx, item.ID, 1); err != nil {
		kind, msg := alertFor(err)
		c.ui.Alert(kind, msg)
		return 0, false
	}
	c.ui.Alert(AlertSuccess, "Added to cart")
	return 0, false
}
