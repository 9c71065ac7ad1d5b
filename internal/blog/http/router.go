package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/inkpothq/inkpot/internal/blog/service"
	"github.com/inkpothq/inkpot/internal/blog/store"
	"github.com/inkpothq/inkpot/pkg/httpx"
	"github.com/inkpothq/inkpot/pkg/jwtx"
	"github.com/inkpothq/inkpot/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// CookieConfig controls how the session cookie is written.
	Cookies CookieConfig

	// FrontendURL is where the Google callback redirects the browser
	// after the handshake.
	FrontendURL string

	// UploadDir is where post images land.
	UploadDir string

	AuthService   *service.AuthService
	GoogleService *service.GoogleService
	PostService   *service.PostService
	UserService   *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, frontendOrigin string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		FrontendURL:  frontendOrigin,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(frontendOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerGoogle()
	r.registerPosts()
	r.registerUpload()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// sessionAuth is the shared cookie-session gate for protected routes.
func (r *Router) sessionAuth() httpx.Middleware {
	return httpx.SessionAuthMiddleware(r.verifier, r.Cookies.Name)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		Cookies:     r.Cookies,
	}

	// Credential endpoints get the strict profile to slow brute force.
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerGoogle() {
	h := &GoogleHandler{
		GoogleService: r.GoogleService,
		UserService:   r.UserService,
		Verifier:      r.verifier,
		Cookies:       r.Cookies,
		FrontendURL:   r.FrontendURL,
	}

	r.Mux.Handle("GET /auth/google",
		httpx.Chain(http.HandlerFunc(h.HandleRedirect),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /auth/google/callback",
		httpx.Chain(http.HandlerFunc(h.HandleCallback),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Session probe: always 200, body tells the front end whether a
	// session exists. No auth middleware on purpose.
	r.Mux.Handle("GET /auth/google/user",
		httpx.Chain(http.HandlerFunc(h.HandleSessionUser),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /auth/google/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}

	r.Mux.Handle("GET /posts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("POST /posts",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			r.sessionAuth(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PATCH /posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.sessionAuth(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			r.sessionAuth(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUpload() {
	h := &UploadHandler{Dir: r.UploadDir}

	r.Mux.Handle("POST /upload",
		httpx.Chain(h,
			r.sessionAuth(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// Stored images are public once uploaded.
	r.Mux.Handle("GET /uploads/",
		httpx.Chain(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(r.UploadDir))),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
