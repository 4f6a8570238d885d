package server

import (
	"net/http"

	"itemshare-api/internal/repository"
	"itemshare-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Server wires the HTTP surface: chi routes, identity middleware,
// metrics, and the services behind them.
type Server struct {
	Router  *chi.Mux
	Metrics *Metrics

	pool   *pgxpool.Pool
	logger *zap.Logger

	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
}

// Options configures New. Pool is optional; without it /dbping reports
// the database as unavailable, which is what handler tests want.
type Options struct {
	Store         *repository.Store
	Pool          *pgxpool.Pool
	Clock         service.Clock
	Logger        *zap.Logger
	EnableMetrics bool
}

func New(opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = service.SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		Router:   chi.NewRouter(),
		Metrics:  NewMetrics(),
		pool:     opts.Pool,
		logger:   opts.Logger,
		users:    service.NewUserService(opts.Store, opts.Logger),
		items:    service.NewItemService(opts.Store, opts.Clock, opts.Logger),
		bookings: service.NewBookingService(opts.Store, opts.Clock, opts.Logger),
		requests: service.NewRequestService(opts.Store, opts.Clock, opts.Logger),
	}

	// Public routes first, no middleware.
	s.Router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	s.Router.Get("/dbping", s.dbPing)

	if opts.EnableMetrics {
		s.Router.Use(s.Metrics.Middleware())
		s.Router.Get("/metrics", s.Metrics.Handler().ServeHTTP)
	}

	// User CRUD carries no caller identity: registration has no user
	// id to present yet.
	s.Router.Route("/users", func(r chi.Router) {
		r.Post("/", s.createUser)
		r.Get("/", s.listUsers)
		r.Get("/{id}", s.getUser)
		r.Patch("/{id}", s.updateUser)
		r.Delete("/{id}", s.deleteUser)
	})

	// Everything else requires the gateway identity header.
	s.Router.Group(func(r chi.Router) {
		r.Use(s.withIdentity)

		r.Route("/items", func(r chi.Router) {
			r.Post("/", s.createItem)
			r.Get("/", s.listOwnItems)
			r.Get("/search", s.searchItems)
			r.Get("/{id}", s.getItem)
			r.Patch("/{id}", s.updateItem)
			r.Delete("/{id}", s.deleteItem)
			r.Post("/{id}/comment", s.addComment)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", s.createBooking)
			r.Get("/", s.listBookingsByBooker)
			r.Get("/owner", s.listBookingsByOwner)
			r.Get("/{id}", s.getBooking)
			r.Patch("/{id}", s.decideBooking)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/", s.createRequest)
			r.Get("/", s.listOwnRequests)
			r.Get("/all", s.listAllRequests)
			r.Get("/{id}", s.getRequest)
		})
	})

	return s
}

func (s *Server) dbPing(w http.ResponseWriter, r *http.Request) {
	if s.pool == nil {
		http.Error(w, "db: unavailable", http.StatusServiceUnavailable)
		return
	}
	if err := s.pool.Ping(r.Context()); err != nil {
		http.Error(w, "db: "+err.Error(), http.StatusServiceUnavailable)
		return
	}
	if _, err := w.Write([]byte("db: ok")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
