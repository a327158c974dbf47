package httpapi

import (
	"net/http"
	"time"

	"championsite-backend-go/internal/config"
	"championsite-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Tokens     services.TokenService
	Mailer     *services.Mailer
	MetricsHub *services.MetricsHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    time.Duration(cfg.TokenTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         db,
		Config:     cfg,
		Tokens:     tokens,
		Mailer:     services.NewMailer(cfg),
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", s.Health)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireCapability(services.CapManageAdmins))
			admin.Get("/", s.ListAdmins)
			admin.Post("/", s.CreateAdmin)
			admin.Put("/password", s.ChangePassword)
			admin.Put("/{adminId}/role", s.UpdateAdminRole)
			admin.Delete("/{adminId}", s.DeactivateAdmin)
			admin.Get("/metrics/history", s.MetricsHistory)
		})

		api.Route("/events", func(events chi.Router) {
			events.Get("/", s.ListEvents)
			events.Get("/upcoming", s.UpcomingEvents)
			events.Get("/{eventId}", s.GetEvent)
			events.Get("/{eventId}/ics", s.EventICS)
			events.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Post("/", s.CreateEvent)
			events.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Put("/{eventId}", s.UpdateEvent)
			events.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Delete("/{eventId}", s.DeleteEvent)
		})

		api.Route("/testimonials", func(t chi.Router) {
			t.Post("/", s.CreateTestimonial)
			t.Get("/", s.ListApprovedTestimonials)
			t.Route("/admin", func(mod chi.Router) {
				mod.Use(WithAuth(s.Tokens))
				mod.Use(RequireCapability(services.CapWrite))
				mod.Get("/", s.ListAllTestimonials)
				mod.Put("/{testimonialId}/approve", s.ApproveTestimonial)
				mod.Put("/{testimonialId}/reject", s.RejectTestimonial)
				mod.Delete("/{testimonialId}", s.DeleteTestimonial)
			})
		})

		api.Route("/sermons", func(sermons chi.Router) {
			sermons.Get("/", s.ListSermons)
			sermons.Get("/{sermonId}", s.GetSermon)
			sermons.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Post("/", s.CreateSermon)
			sermons.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Put("/{sermonId}", s.UpdateSermon)
			sermons.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Delete("/{sermonId}", s.DeleteSermon)
		})

		api.Route("/blog", func(blog chi.Router) {
			blog.Get("/", s.ListBlogPosts)
			blog.Get("/{slug}", s.GetBlogPost)
			blog.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Post("/", s.CreateBlogPost)
			blog.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Put("/{slug}", s.UpdateBlogPost)
			blog.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Delete("/{slug}", s.DeleteBlogPost)
		})

		api.Route("/gallery", func(gallery chi.Router) {
			gallery.Get("/", s.ListGalleryFolders)
			gallery.Get("/{folderId}", s.GetGalleryFolder)
			gallery.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Post("/", s.CreateGalleryFolder)
			gallery.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Delete("/{folderId}", s.DeleteGalleryFolder)
		})

		api.Route("/livestream", func(stream chi.Router) {
			stream.Get("/", s.GetLiveStream)
			stream.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Get("/all", s.ListLiveStreams)
			stream.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Post("/", s.CreateLiveStream)
			stream.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Put("/{streamId}", s.UpdateLiveStream)
			stream.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Delete("/{streamId}", s.DeleteLiveStream)
			stream.With(WithAuth(s.Tokens), RequireCapability(services.CapWrite)).Patch("/{streamId}/toggle", s.ToggleLiveStream)
		})

		api.Post("/prayer-request", s.SendPrayerRequest)

		api.Get("/search", s.PublicSearch)
		api.Post("/visits", s.TrackVisit)
		api.Get("/visits/count", s.VisitCount)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
