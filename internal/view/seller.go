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

// SellerController manages the authenticated seller's listings:
// create, edit and delete, each confirmed by a full list reload.
type SellerController struct {
	gw      *api.Gateway
	session *session.Store
	ui      *UI
	navbar  *Navbar
	prices  *PriceFormatter
	logger  *zap.Logger

	seq        sequencer
	categories []domain.Category
	items      []domain.Item
}

func NewSellerController(gw *api.Gateway, store *session.Store, ui *UI, navbar *Navbar, prices *PriceFormatter, logger *zap.Logger) *SellerController {
	return &SellerController{gw: gw, session: store, ui: ui, navbar: navbar, prices: prices, logger: logger}
}

func (c *SellerController) Show(ctx context.Context) Page {
	c.navbar.Refresh()
	if c.session.State() == session.StateAnonymous {
		return PageLogin
	}

	c.loadCategories(ctx)
	c.loadProducts(ctx)

	for {
		input := c.ui.Command("seller")
		switch {
		case input == "":
			continue
		case input == "new":
			c.createProduct(ctx)
		case strings.HasPrefix(input, "edit"):
			c.editProduct(ctx, input)
		case strings.HasPrefix(input, "delete"):
			c.deleteProduct(ctx, input)
		default:
			if page, ok := c.navbar.Navigate(input); ok {
				return page
			}
			c.ui.Alert(AlertWarning, "Unknown command")
		}
	}
}

func (c *SellerController) loadCategories(ctx context.Context) {
	cats, err := c.gw.Categories(ctx)
	if err != nil {
		c.logger.Warn("Could not load categories", zap.Error(err))
		return
	}
	c.categories = cats
}

func (c *SellerController) loadProducts(ctx context.Context) {
	ticket := c.seq.next()
	c.ui.Say("Loading...")

	items, err := c.gw.SellerItems(ctx)
	if !c.seq.isCurrent(ticket) {
		return
	}

	if err != nil {
		c.items = nil
		c.ui.Say("Failed to load products")
		return
	}
	c.items = items

	if len(items) == 0 {
		c.ui.Say("No products yet")
		return
	}
	for i, item := range items {
		c.ui.Say("%2d. %s — %s", i+1, item.Name, c.prices.Format(item.Price))
	}
}

// promptDraft collects an item draft. The category is picked by its
// canonical id and translated to a name only at the wire boundary,
// since the create endpoint keys categories by name.
func (c *SellerController) promptDraft() (api.ItemDraft, bool) {
	name := c.ui.Ask("Name")
	priceInput := c.ui.Ask("Price")
	price, _ := strconv.ParseFloat(priceInput, 64)
	image := c.ui.Ask("Image URL")

	c.ui.Say("Categories:")
	for i, cat := range c.categories {
		c.ui.Say("  [%d] %s", i+1, cat.Name)
	}
	var categoryID, categoryName string
	if idx, err := strconv.Atoi(c.ui.Ask("Category number")); err == nil && idx >= 1 && idx <= len(c.categories) {
		categoryID = c.categories[idx-1].ID
		categoryName = c.categories[idx-1].Name
	}

	form := ProductForm{Name: name, Price: price, ImageURL: image, CategoryID: categoryID}
	if errs := ValidateForm(form); len(errs) > 0 {
		c.ui.Alert(AlertWarning, "Fill all fields")
		return api.ItemDraft{}, false
	}

	return api.ItemDraft{
		Name:         name,
		Price:        price,
		ImageURL:     image,
		CategoryName: categoryName,
	}, true
}

func (c *SellerController) createProduct(ctx context.Context) {
	draft, ok := c.promptDraft()
	if !ok {
		return
	}

	if _, err := c.gw.CreateItem(ctx, draft); err != nil {
		kind, msg := alertFor(err)
		c.ui.Alert(kind, msg)
		return
	}
	c.ui.Alert(AlertSuccess, "Product added")
	c.loadProducts(ctx)
}

func (c *SellerController) editProduct(ctx context.Context, input string) {
	item, ok := c.pickItem(input, "edit")
	if !ok {
		return
	}

	draft, ok := c.promptDraft()
	if !ok {
		return
	}

	if _, err := c.gw.UpdateItem(ctx, item.ID, draft); err != nil {
		kind, msg := alertFor(err)
		c.ui.Alert(kind, msg)
		return
	}
	c.ui.Alert(AlertSuccess, "Product updated")
	c.loadProducts(ctx)
}

// deleteProduct requires interactive confirmation before the
// destructive call; a declined prompt issues no request at all.
func (c *SellerController) deleteProduct(ctx context.Context, input string) {
	item, ok := c.pickItem(input, "delete")
	if !ok {
		return
	}

	if !c.ui.Confirm("Delete this item?") {
		return
	}

	if err := c.gw.DeleteItem(ctx, item.ID); err != nil {
		kind, msg := alertFor(err)
		c.ui.Alert(kind, msg)
		return
	}
	c.loadProducts(ctx)
}

func (c *SellerController) pickItem(input, verb string) (domain.Item, bool) {
	row := strings.TrimSpace(strings.TrimPrefix(input, verb))
	if row == "" {
		row = c.ui.Ask("Product number")
	}
	idx, err := strconv.Atoi(row)
	if err != nil || idx < 1 || idx > len(c.items) {
		c.ui.Alert(AlertWarning, "No such product")
		return domain.Item{}, false
	}
	return c.items[idx-1], true
}
