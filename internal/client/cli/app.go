package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/client"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/config"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/export"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/guard"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/listing"
	"github.com/sabastianrafa/powergym-ag-system/internal/client/services"
	"github.com/sabastianrafa/powergym-ag-system/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Pinger probes the API liveness endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the console.
type Deps struct {
	Session    *services.SessionManager
	Customers  services.CustomerService
	Biometrics services.BiometricService
	Pinger     Pinger
	Logger     logging.Logger
}

type App struct {
	config     *config.Config
	session    *services.SessionManager
	customers  services.CustomerService
	biometrics services.BiometricService
	roster     *export.Roster
	pinger     Pinger
	guard      *guard.Guard
	log        logging.Logger

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode

	view        guard.View
	list        *listing.CustomerList
	unsubscribe func()
}

// NewApp builds the console reading operator input from in and writing to out.
func NewApp(cfg *config.Config, deps Deps, in io.Reader, out io.Writer) *App {
	log := deps.Logger
	if log == nil {
		log = logging.Nop()
	}

	a := &App{
		config:     cfg,
		session:    deps.Session,
		customers:  deps.Customers,
		biometrics: deps.Biometrics,
		roster:     export.NewRoster(deps.Customers, log),
		pinger:     deps.Pinger,
		log:        log.With("component", "cli"),
		reader:     bufio.NewReader(in),
		out:        out,
	}
	a.guard = guard.New(deps.Session, a, nil)
	a.view, _ = guard.Lookup(guard.ViewDashboard)
	a.unsubscribe = deps.Session.Subscribe(a.onSessionEvent)
	return a
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) onSessionEvent(ev services.Event) {
	if ev.Kind != services.EventExpired {
		return
	}
	a.println(client.SessionExpiredMessage)
	a.RedirectToLogin(context.Background())
}

// RedirectToLogin leaves the current screen for the login screen.
func (a *App) RedirectToLogin(ctx context.Context) {
	a.closeList()
	a.view, _ = guard.Lookup(guard.ViewLogin)
	a.println("Please login to continue (type 'login').")
}

func (a *App) closeList() {
	if a.list != nil {
		a.list.Close()
		a.list = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// status is shown in the prompt: who is signed in, connectivity and path.
func (a *App) status() string {
	s := ""
	if id, ok := a.session.Identity(); ok {
		s = fmt.Sprintf("%s/%s ", id.DisplayName(), id.Role)
	}
	if m := a.Mode(); m != "" {
		s += string(m) + " "
	}
	return s + a.view.Path
}

// Run restores the session, asks for credentials when needed and runs the
// REPL until the operator exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.unsubscribe()
	defer a.closeList()

	a.println("PowerGym admin console (type 'help' for commands)")

	if err := a.session.Initialize(ctx); err != nil {
		a.println("Could not restore the previous session; please login.")
	}

	if a.pinger != nil {
		go a.StartOnlineStatusWatcher(ctx, a.config.HealthInterval)
	}

	if !a.isLoggedIn() {
		_ = a.Login(ctx)
	} else {
		_ = a.Navigate(ctx, "/")
	}

	runREPL(ctx, a, a.reader)
	return nil
}

// StartOnlineStatusWatcher pings the API every interval and switches the
// console between online and offline mode.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := a.pinger.Ping(pctx); err != nil {
			a.setMode(ModeOffline)
			return
		}
		a.setMode(ModeOnline)
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return
		}
	}
}
