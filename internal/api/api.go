package api

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/npezzotti/go-forum/internal/config"
	"github.com/npezzotti/go-forum/internal/database"
	"github.com/npezzotti/go-forum/internal/feed"
	"github.com/npezzotti/go-forum/internal/stats"
)

type ForumApp struct {
	log            *log.Logger
	db             database.ForumRepository
	mux            *http.Server
	feed           *feed.Hub
	stats          stats.StatsProvider
	templates      map[string]*template.Template
	signingKey     []byte
	allowedOrigins []string
}

func NewForumApp(mux *http.ServeMux, logger *log.Logger, hub *feed.Hub, db database.ForumRepository, sp stats.StatsProvider, cfg *config.Config) (*ForumApp, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &ForumApp{
		log:            logger,
		db:             db,
		feed:           hub,
		stats:          sp,
		templates:      templates,
		signingKey:     cfg.SigningKey,
		allowedOrigins: cfg.AllowedOrigins,
	}

	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("/login/{$}", s.login)
	mux.HandleFunc("/register/{$}", s.register)
	mux.HandleFunc("GET /logout/{$}", s.logout)
	mux.HandleFunc("GET /room/{id}", s.roomPage)
	mux.Handle("POST /room/{id}", s.authMiddleware(s.postMessage))
	mux.Handle("GET /profile/{user_id}", s.authMiddleware(s.userProfile))
	mux.Handle("/edit_profile/{$}", s.authMiddleware(s.editProfile))
	mux.Handle("/create_room/{$}", s.authMiddleware(s.createRoom))
	mux.Handle("/update_room/{room_id}", s.authMiddleware(s.updateRoom))
	mux.Handle("/delete_room/{room_id}", s.authMiddleware(s.deleteRoom))
	mux.Handle("/delete_comment/{room_id}/{comment_id}", s.authMiddleware(s.deleteComment))
	mux.HandleFunc("GET /topics/{$}", s.topicsPage)
	mux.HandleFunc("GET /activity/{$}", s.activityPage)

	mux.HandleFunc("GET /api/{$}", s.getRoutes)
	mux.HandleFunc("GET /api/rooms/{$}", s.getRooms)
	mux.HandleFunc("GET /api/room/{id}", s.getRoom)

	mux.Handle("GET /ws/room/{id}", s.authMiddleware(s.serveRoomFeed))
	mux.HandleFunc("GET /healthz", s.healthCheck)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
		handlers.AllowCredentials(),
	)(mux)

	h = handlers.CombinedLoggingHandler(os.Stdout, h)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s, nil
}

func (s *ForumApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *ForumApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
