package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-graph/framework/app"
	"github.com/km-arc/go-graph/framework/config"
	"github.com/km-arc/go-graph/framework/container"
	"github.com/km-arc/go-graph/routing"
)

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := application.Register(&greeterProvider{}); err != nil {
		application.Logger().Fatal("register", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Logger().Fatal("server error", zap.Error(err))
	}
}

// ── Services ─────────────────────────────────────────────────────────────────

// Greeter is transient and takes its salutation as a build argument.
type Greeter interface {
	Greet(name string) string
}

type salutationGreeter struct {
	salutation string
}

func (g *salutationGreeter) Greet(name string) string {
	return g.salutation + ", " + name + "!"
}

func newGreeter(_ *container.Graph, salutation string) (Greeter, error) {
	if salutation == "" {
		salutation = "Hello"
	}
	return &salutationGreeter{salutation: salutation}, nil
}

// Visits is a process-wide singleton.
type Visits struct {
	n atomic.Int64
}

func (v *Visits) Inc() int64 { return v.n.Add(1) }

// Session lives for one request.
type Session struct {
	ID string

	mu      sync.Mutex
	greeted []string
}

func (s *Session) Add(name string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.greeted = append(s.greeted, name)
	return append([]string(nil), s.greeted...)
}

func newSession(_ *container.Graph, id string) (*Session, error) {
	return &Session{ID: id}, nil
}

// ── Provider ─────────────────────────────────────────────────────────────────

type greeterProvider struct {
	container.BaseProvider
}

func (p *greeterProvider) Register(r container.Registrar) {
	container.Bind(r, container.Supplier[Greeter, string](newGreeter))
	container.BindSingleton(r, container.Supplier[*Visits, struct{}](
		func(*container.Graph, struct{}) (*Visits, error) { return &Visits{}, nil }))
	container.Bind(r, container.Supplier[*Session, string](newSession))
}

// Boot mounts the greeting routes on the application router.
func (p *greeterProvider) Boot(g *container.Graph) error {
	router, err := container.Resolve[*routing.Router](g)
	if err != nil {
		return err
	}
	cfg, err := container.Resolve[*config.Config](g)
	if err != nil {
		return err
	}
	log, err := container.Resolve[*zap.Logger](g)
	if err != nil {
		return err
	}

	router.Get("/", func(w http.ResponseWriter, req *http.Request) {
		routing.NewResponse(w).Success(map[string]any{"message": "Welcome to " + cfg.App.Name})
	})

	router.Group(func(api *routing.Router) {
		api.Middleware(routing.Scoped(g, log, cfg.Graph.CorrelationHeader, container.KeyOf[*Session]()))
		api.Get("/greet/{name}", greetHandler(g))
	})
	return nil
}

// greetHandler greets every comma-separated name in the {name} param,
// reusing one Session for the whole request.
//
//	GET /greet/ana?salutation=Howdy
func greetHandler(g *container.Graph) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		res := routing.NewResponse(w)

		id, _ := routing.ScopeID(req)
		session, err := routing.ResolveWith[*Session](req, id)
		if err != nil {
			res.Fail(err)
			return
		}
		greeter, err := container.ResolveWith[Greeter](g, req.URL.Query().Get("salutation"))
		if err != nil {
			res.Fail(err)
			return
		}
		visits, err := container.Resolve[*Visits](g)
		if err != nil {
			res.Fail(err)
			return
		}

		var messages []string
		var greeted []string
		for _, name := range splitNames(routing.Param(req, "name")) {
			// Resolving again within the request returns the same session.
			again, err := routing.Resolve[*Session](req)
			if err != nil {
				res.Fail(err)
				return
			}
			greeted = again.Add(name)
			messages = append(messages, greeter.Greet(name))
		}

		res.Success(map[string]any{
			"messages":    messages,
			"session":     session.ID,
			"correlation": routing.CorrelationID(req),
			"greeted":     greeted,
			"visits":      visits.Inc(),
		})
	}
}

func splitNames(s string) []string {
	var names []string
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}
