package view

import (
	"strings"

	"marketfront/internal/session"

	"go.uber.org/zap"
)

// Page identifies a navigation target.
type Page int

const (
	PageHome Page = iota
	PageLogin
	PageSignup
	PageCart
	PageSeller
	PageQuit
)

// Link is a navigation affordance visible in the navbar.
type Link string

const (
	LinkHome   Link = "home"
	LinkCart   Link = "cart"
	LinkLogin  Link = "login"
	LinkSignup Link = "signup"
	LinkSeller Link = "seller"
	LinkLogout Link = "logout"
	LinkQuit   Link = "quit"
)

// Links derives the visible affordances purely from the session state:
// login and signup only while anonymous, seller and logout only while
// authenticated.
func Links(state session.State) []Link {
	if state == session.StateAuthenticated {
		return []Link{LinkHome, LinkCart, LinkSeller, LinkLogout, LinkQuit}
	}
	return []Link{LinkHome, LinkCart, LinkLogin, LinkSignup, LinkQuit}
}

// Navbar renders the navigation line and resolves link selections.
type Navbar struct {
	session *session.Store
	ui      *UI
	logger  *zap.Logger
}

func NewNavbar(store *session.Store, ui *UI, logger *zap.Logger) *Navbar {
	return &Navbar{session: store, ui: ui, logger: logger}
}

// Refresh re-derives the visible links and renders them.
func (n *Navbar) Refresh() {
	links := Links(n.session.State())
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = string(l)
	}
	n.ui.Say("nav: %s", strings.Join(parts, " | "))
}

// Navigate maps user input to a page when it names a currently visible
// link. Selecting logout clears the credential, re-derives the navbar,
// and lands on the home page.
func (n *Navbar) Navigate(input string) (Page, bool) {
	for _, link := range Links(n.session.State()) {
		if string(link) != input {
			continue
		}
		switch link {
		case LinkHome:
			return PageHome, true
		case LinkCart:
			return PageCart, true
		case LinkLogin:
			return PageLogin, true
		case LinkSignup:
			return PageSignup, true
		case LinkSeller:
			return PageSeller, true
		case LinkLogout:
			if err := n.session.Clear(); err != nil {
				n.logger.Error("Failed to clear credential", zap.Error(err))
			}
			n.Refresh()
			return PageHome, true
		case LinkQuit:
			return PageQuit, true
		}
	}
	return PageHome, false
}
