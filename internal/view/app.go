package view

import (
	"context"

	"marketfront/internal/api"
	"marketfront/internal/session"

	"go.uber.org/zap"
)

// App owns the page loop. One page controller runs at a time; it
// returns the next page when the user navigates away.
type App struct {
	ui     *UI
	logger *zap.Logger

	home   *HomeController
	login  *LoginController
	signup *SignupController
	cart   *CartController
	seller *SellerController
}

func NewApp(gw *api.Gateway, store *session.Store, ui *UI, prices *PriceFormatter, logger *zap.Logger) *App {
	navbar := NewNavbar(store, ui, logger)
	return &App{
		ui:     ui,
		logger: logger,
		home:   NewHomeController(gw, store, ui, navbar, prices, logger),
		login:  NewLoginController(gw, store, ui, navbar, logger),
		signup: NewSignupController(gw, ui, navbar, logger),
		cart:   NewCartController(gw, store, ui, navbar, prices, logger),
		seller: NewSellerController(gw, store, ui, navbar, prices, logger),
	}
}

// Run drives pages until the user quits or the context ends.
func (a *App) Run(ctx context.Context) error {
	page := PageHome
	for page != PageQuit {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch page {
		case PageHome:
			page = a.home.Show(ctx)
		case PageLogin:
			page = a.login.Show(ctx)
		case PageSignup:
			page = a.signup.Show(ctx)
		case PageCart:
			page = a.cart.Show(ctx)
		case PageSeller:
			page = a.seller.Show(ctx)
		}
	}

	a.ui.Say("Bye.")
	return nil
}
