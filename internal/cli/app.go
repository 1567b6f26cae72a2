// Package cli is the view layer of the storefront: a REPL that renders
// backend data and turns user input into API intents. Restricted views are
// gated through the access guard against the live session snapshot; denial
// drops the user at the login view.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apotekhub/storefront/internal/api"
	"github.com/apotekhub/storefront/internal/cart"
	"github.com/apotekhub/storefront/internal/config"
	"github.com/apotekhub/storefront/internal/guard"
	"github.com/apotekhub/storefront/internal/logging"
	"github.com/apotekhub/storefront/internal/models"
	"github.com/apotekhub/storefront/internal/session"
)

type App struct {
	cfg     *config.Config
	log     logging.Logger
	api     api.Client
	session *session.Store

	// cart is the reconciler of the currently mounted cart view; nil when
	// no cart view has been mounted since startup or the last checkout.
	cart *cart.Reconciler

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger, client api.Client, sess *session.Store) *App {
	return &App{
		cfg:     cfg,
		log:     log,
		api:     client,
		session: sess,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run blocks in the REPL until the user exits. The caller must have
// finished session initialization first: no view renders while the session
// is still loading.
func (a *App) Run(ctx context.Context) {
	a.printf("Welcome to the pharmacy storefront (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	snap := a.session.Snapshot()
	if snap.State == session.StateAuthenticated && snap.Identity != nil {
		return fmt.Sprintf("(%s)", snap.Identity.Email)
	}
	return "(guest)"
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) isOwner() bool {
	return a.session.Identity().HasRole(models.RoleOwner)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

// allow evaluates the access guard for a view requiring the given roles.
// On denial it prints the redirect notice and opens the login view; the
// original intent is abandoned, not queued for retry.
func (a *App) allow(ctx context.Context, roles ...models.RoleName) bool {
	if guard.Check(a.session.Snapshot(), roles...) == guard.Allow {
		return true
	}
	a.printf("You need to be logged in with the right account for that.")
	_ = a.Login(ctx, nil)
	return false
}

// showError translates an API error into a user-facing notice. Validation
// failures list their field messages; an authorization rejection redirects
// to login (the transport hook has already cleared the session by the time
// we get here).
func (a *App) showError(ctx context.Context, err error) {
	var ve *api.ValidationError
	switch {
	case errors.As(err, &ve):
		a.printf("Error: %s", ve.Messages())
	case errors.Is(err, api.ErrUnauthorized):
		a.printf("Your session is no longer valid. Please log in again.")
		_ = a.Login(ctx, nil)
	case errors.Is(err, api.ErrUnavailable):
		a.printf("Cannot reach the server. Please try again later.")
	case errors.Is(err, api.ErrNotFound):
		a.printf("Not found.")
	default:
		a.printf("Something went wrong. Please try again.")
		a.log.Error(ctx, "request failed", "error", err)
	}
}

// argID parses the first argument as a numeric id; ok is false when the
// argument is missing or malformed (a usage line is printed).
func (a *App) argID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		a.printf("Usage: %s", usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		a.printf("Usage: %s", usage)
		return 0, false
	}
	return id, true
}

// argPage parses an optional page argument, defaulting to 1.
func (a *App) argPage(args []string) int {
	if len(args) == 0 {
		return 1
	}
	page, err := strconv.Atoi(args[0])
	if err != nil || page < 1 {
		return 1
	}
	return page
}
