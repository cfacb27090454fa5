package view

import (
	"context"
	"time"

	"marketfront/internal/api"
	"marketfront/internal/session"

	"go.uber.org/zap"
)

// redirectDelay leaves the confirmation message on screen before
// navigating away.
const redirectDelay = 1 * time.Second

// LoginController authenticates the user and persists the returned
// credential.
type LoginController struct {
	gw      *api.Gateway
	session *session.Store
	ui      *UI
	navbar  *Navbar
	logger  *zap.Logger

	// RedirectDelay is overridable so tests do not sleep.
	RedirectDelay time.Duration
}

func NewLoginController(gw *api.Gateway, store *session.Store, ui *UI, navbar *Navbar, logger *zap.Logger) *LoginController {
	return &LoginController{
		gw:            gw,
		session:       store,
		ui:            ui,
		navbar:        navbar,
		logger:        logger,
		RedirectDelay: redirectDelay,
	}
}

func (c *LoginController) Show(ctx context.Context) Page {
	c.navbar.Refresh()

	for {
		form := LoginForm{
			Username: c.ui.Ask("Username"),
			Password: c.ui.Ask("Password"),
		}

		if errs := ValidateForm(form); len(errs) > 0 {
			// Never reaches the network
			c.ui.Alert(AlertWarning, "Provide username and password")
		} else if token, err := c.gw.Login(ctx, form.Username, form.Password); err != nil {
			kind, msg := alertFor(err)
			c.ui.Alert(kind, msg)
		} else {
			if err := c.session.Set(token); err != nil {
				c.logger.Error("Failed to persist credential", zap.Error(err))
				c.ui.Alert(AlertDanger, "Could not store credential")
				return PageHome
			}
			c.navbar.Refresh()
			c.ui.Alert(AlertSuccess, "Login successful")
			time.Sleep(c.RedirectDelay)
			return PageHome
		}

		if !c.ui.Confirm("Try again?") {
			return PageHome
		}
	}
}

// SignupController creates an account. Success hands over to the login
// page instead of authenticating.
type SignupController struct {
	gw     *api.Gateway
	ui     *UI
	navbar *Navbar
	logger *zap.Logger

	RedirectDelay time.Duration
}

func NewSignupController(gw *api.Gateway, ui *UI, navbar *Navbar, logger *zap.Logger) *SignupController {
	return &SignupController{
		gw:            gw,
		ui:            ui,
		navbar:        navbar,
		logger:        logger,
		RedirectDelay: redirectDelay,
	}
}

func (c *SignupController) Show(ctx context.Context) Page {
	c.navbar.Refresh()

	for {
		form := LoginForm{
			Username: c.ui.Ask("Username"),
			Password: c.ui.Ask("Password"),
		}

		if errs := ValidateForm(form); len(errs) > 0 {
			c.ui.Alert(AlertWarning, "Provide username and password")
		} else if err := c.gw.Signup(ctx, form.Username, form.Password); err != nil {
			kind, msg := alertFor(err)
			c.ui.Alert(kind, msg)
		} else {
			c.ui.Alert(AlertSuccess, "Account created. Please login.")
			time.Sleep(c.RedirectDelay)
			return PageLogin
		}

		if !c.ui.Confirm("Try again?") {
			return PageHome
		}
	}
}
