package wire

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"arto/internal/adaptor"
	"arto/internal/data/repository"
	"arto/internal/usecase"
	"arto/pkg/cache"
	"arto/pkg/flash"
	"arto/pkg/middleware"
	"arto/pkg/storage"
	"arto/pkg/utils"
	"arto/pkg/view"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	loginPath      = "/login/"
	maxRequestBody = 12 << 20
)

// App holds the wired router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, store cache.Store, media *storage.MediaStore, config *utils.Config, logger *zap.Logger) (*App, error) {
	renderer, err := view.New(config.Media.URL)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	service := usecase.NewService(repo, media, config, logger)
	flashes := flash.NewStore(store, config.Session.Secure, logger)
	handler := adaptor.NewHandler(service, renderer, flashes, config, logger)

	router := setupRouter(handler, service, store, flashes, media, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	store cache.Store,
	flashes *flash.Store,
	media *storage.MediaStore,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	if config.App.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(chimw.RequestSize(maxRequestBody))

	// Browser pages share session, CSRF and flash handling
	pages := chi.Chain(
		middleware.Session(service.Auth, config.Session.CookieName, logger),
		middleware.CSRF(config.Session.Secure, logger),
		flashes.Middleware,
	)

	// Form posts that guess credentials are throttled
	limiter := middleware.RateLimiter(store, config.RateLimit.Limit, config.RateLimit.Window(), 5*time.Minute, "auth", logger)

	r.Group(func(r chi.Router) {
		r.Use(pages...)

		wireAuth(r, handler.Auth, limiter)
		wireHome(r, handler.Home)
		wireArtist(r, handler.Artist, logger)
		wireAccount(r, handler.Account)
	})

	wireAPI(r, handler.API, config)
	wireMedia(r, media, config.Media.URL)

	r.NotFound(pages.HandlerFunc(handler.Home.NotFound).ServeHTTP)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// wireMedia serves uploaded files when MEDIA_URL is a local path.
func wireMedia(r chi.Router, media *storage.MediaStore, mediaURL string) {
	if !strings.HasPrefix(mediaURL, "/") {
		return
	}
	prefix := "/" + strings.Trim(mediaURL, "/") + "/"
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(media.Root())))
	r.Handle(prefix+"*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, req)
	}))
}
