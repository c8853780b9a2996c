package api

import (
	"database/sql"
	"net/http"

	"github.com/yeshi-2001/Lost-And-Found-System/internal/metrics"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/model"
	"github.com/yeshi-2001/Lost-And-Found-System/internal/service"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string, svc *service.Service) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	profileHandler := &ProfileHandler{DB: db}
	lostHandler := &LostItemsHandler{DB: db, Svc: svc}
	foundHandler := &FoundItemsHandler{DB: db, Svc: svc}
	matchesHandler := &MatchesHandler{DB: db, Svc: svc}
	notesHandler := &NotificationsHandler{DB: db}
	adminHandler := &AdminHandler{Svc: svc}

	authMW := AuthMiddleware(jwtSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	authed := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	admin := func(h http.HandlerFunc) http.Handler { return authMW(requireAdmin(h)) }

	// Public.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/options", Options)
	mux.Handle("GET /metrics", metrics.Handler())

	// Session.
	mux.Handle("PUT /api/auth/password", authed(authHandler.ChangePassword))
	mux.Handle("POST /api/auth/logout", authed(authHandler.Logout))
	mux.Handle("GET /api/profile", authed(profileHandler.Get))
	mux.Handle("PUT /api/profile", authed(profileHandler.Update))

	// Reports.
	mux.Handle("POST /api/lost-items", authed(lostHandler.Create))
	mux.Handle("GET /api/lost-items", authed(lostHandler.List))
	mux.Handle("GET /api/lost-items/{id}", authed(lostHandler.Get))
	mux.Handle("PUT /api/lost-items/{id}", authed(lostHandler.Update))
	mux.Handle("PUT /api/lost-items/{id}/image", authed(lostHandler.UploadImage))
	mux.Handle("GET /api/lost-items/{id}/image", authed(lostHandler.GetImage))

	mux.Handle("POST /api/found-items", authed(foundHandler.Create))
	mux.Handle("GET /api/found-items", authed(foundHandler.List))
	mux.Handle("GET /api/found-items/{id}", authed(foundHandler.Get))
	mux.Handle("PUT /api/found-items/{id}", authed(foundHandler.Update))
	mux.Handle("PUT /api/found-items/{id}/image", authed(foundHandler.UploadImage))
	mux.Handle("GET /api/found-items/{id}/image", authed(foundHandler.GetImage))

	// Matches and verification.
	mux.Handle("GET /api/matches", authed(matchesHandler.List))
	mux.Handle("GET /api/matches/{id}", authed(matchesHandler.Get))
	mux.Handle("GET /api/matches/{id}/questions", authed(matchesHandler.Questions))
	mux.Handle("POST /api/matches/{id}/answers", authed(matchesHandler.Answers))
	mux.Handle("POST /api/matches/{id}/reject", authed(matchesHandler.Reject))
	mux.Handle("POST /api/matches/{id}/return", authed(matchesHandler.Return))

	mux.Handle("GET /api/notifications", authed(notesHandler.List))
	mux.Handle("GET /api/notifications/unread-count", authed(notesHandler.UnreadCount))
	mux.Handle("POST /api/notifications/{id}/read", authed(notesHandler.MarkRead))

	// Admin.
	mux.Handle("POST /api/admin/force-match", admin(adminHandler.ForceMatch))
	mux.Handle("POST /api/admin/rematch", admin(adminHandler.Rematch))
	mux.Handle("GET /api/users", admin(usersHandler.List))
	mux.Handle("DELETE /api/users/{id}", admin(usersHandler.Delete))

	return mux
}
