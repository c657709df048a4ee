// internal/httpserver/auth.go
//
// Accounts, JWT cookies and the auth middlewares.
//   - POST /auth/signup, /auth/login, /auth/logout
//   - GET  /auth/me, /stats/me, /games/mine (require auth)
//
// Guests get a long-lived anonymous cookie; their games are claimed by the
// account they later sign up or log in with.

package httpserver

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUsernameTaken = errors.New("username taken")
	errBadToken      = errors.New("invalid token")
)

// credentials is the body of signup and login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// authUser is the logged-in player as seen by handlers.
type authUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type ctxUserKey struct{}

// userFrom returns the authenticated user, or nil for guests.
func userFrom(r *http.Request) *authUser {
	u, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	return u
}

// mountAuthRoutes wires the account endpoints. Profile routes need a token.
func (s *Server) mountAuthRoutes() {
	s.r.Post("/auth/signup", s.handleSignup)
	s.r.Post("/auth/login", s.handleLogin)
	s.r.Post("/auth/logout", s.handleLogout)

	s.r.Group(func(r chi.Router) {
		r.Use(s.requireAuth())
		r.Get("/auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, userFrom(r))
		})
		r.Get("/stats/me", s.handleStats)
		r.Get("/games/mine", s.handleMyGames)
	})
}

// handleSignup registers a player and logs them in. Games played as a guest
// on this browser move to the new account.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.createUser(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			writeError(w, http.StatusConflict, "Username taken")
			return
		}
		var v validationError
		if errors.As(err, &v) {
			writeError(w, http.StatusBadRequest, v.Error())
			return
		}
		log.Error().Err(err).Msg("create user")
		writeError(w, http.StatusInternalServerError, "signup_failed")
		return
	}
	if !s.issueToken(w, u) {
		return
	}
	s.claimGuest(r.Context(), s.ensureAnonID(w, r), u.ID)
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username, "createdAt": u.CreatedAt})
}

// handleLogin checks the password and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	u, err := s.findUserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !s.issueToken(w, u) {
		return
	}
	s.claimGuest(r.Context(), s.ensureAnonID(w, r), u.ID)
	writeJSON(w, http.StatusOK, map[string]any{"id": u.ID, "username": u.Username})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// issueToken signs a JWT for u and sets it as a cookie; it reports false after writing an error.
func (s *Server) issueToken(w http.ResponseWriter, u *userRow) bool {
	tok, exp, err := s.signToken(u)
	if err != nil {
		log.Error().Err(err).Msg("sign jwt")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	s.setAuthCookie(w, tok, exp)
	return true
}

// handleStats reports the caller's counters.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	u, err := s.findUserByID(r.Context(), me.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":          u.ID,
		"gamesPlayed": u.GamesPlayed,
		"wins":        u.Wins,
		"streak":      u.Streak,
	})
}

// handleMyGames lists the caller's 50 most recent games.
func (s *Server) handleMyGames(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	rows, err := s.db.QueryContext(r.Context(), `SELECT id, status, guesses, started_at, COALESCE(finished_at,'')
	                         FROM games WHERE user_id=? ORDER BY started_at DESC LIMIT 50`, me.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	defer rows.Close()

	type gameRow struct {
		ID         string `json:"id"`
		Status     string `json:"status"`
		Guesses    int    `json:"guesses"`
		StartedAt  string `json:"startedAt"`
		FinishedAt string `json:"finishedAt,omitempty"`
	}
	out := []gameRow{}
	for rows.Next() {
		var gr gameRow
		if err := rows.Scan(&gr.ID, &gr.Status, &gr.Guesses, &gr.StartedAt, &gr.FinishedAt); err != nil {
			log.Warn().Err(err).Msg("scan game row")
			continue
		}
		out = append(out, gr)
	}
	writeJSON(w, http.StatusOK, out)
}

// --------------------------- auth middleware -------------------------------

// parseToken verifies an HS256 token and returns the user it names.
// Tokens for deleted accounts are rejected.
func (s *Server) parseToken(ctx context.Context, tok string) (*authUser, error) {
	var c playerClaims
	_, err := jwt.ParseWithClaims(tok, &c, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || c.Subject == "" || c.Username == "" {
		return nil, errBadToken
	}
	if _, err := s.findUserByID(ctx, c.Subject); err != nil {
		return nil, errBadToken
	}
	return &authUser{ID: c.Subject, Username: c.Username}, nil
}

// withOptionalAuth attaches the player to the context when the request
// carries a valid token. Guests pass through untouched.
func (s *Server) withOptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := s.bearerOrCookie(r); tok != "" {
				if u, err := s.parseToken(r.Context(), tok); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireAuth answers 401 unless the request carries a valid token.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := s.bearerOrCookie(r)
			if tok == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			u, err := s.parseToken(r.Context(), tok)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
		})
	}
}

const anonCookieName = "wordle_anon"

// ensureAnonID returns the guest ID from the cookie, minting one if needed.
func (s *Server) ensureAnonID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     anonCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: s.sameSite(),
		Expires:  s.now().Add(180 * 24 * time.Hour),
	})
	return id
}

// claimGuest moves everything a guest played on this browser to userID.
func (s *Server) claimGuest(ctx context.Context, anonID, userID string) {
	s.claimAnonGames(ctx, anonID, userID)
	if s.daily != nil {
		s.daily.claim(ctx, anonID, userID)
	}
}

// claimAnonGames moves a guest's game rows to userID.
func (s *Server) claimAnonGames(ctx context.Context, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon games")
	}
}

// ------------------------ users -------------------------------------------

type userRow struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	GamesPlayed  int
	Wins         int
	Streak       int
}

// validationError is a signup rule violation, safe to show to the user.
type validationError string

func (v validationError) Error() string { return string(v) }

// createUser stores a new account with a bcrypt hash. Usernames are unique
// ignoring case.
func (s *Server) createUser(ctx context.Context, username, pw string) (*userRow, error) {
	username = strings.TrimSpace(username)
	if err := validateSignup(username, pw); err != nil {
		return nil, err
	}
	var exists int
	_ = s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE lower(username)=lower(?)`, username).Scan(&exists)
	if exists == 1 {
		return nil, errUsernameTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC().Truncate(time.Second)
	u := &userRow{ID: genID(), Username: username, PasswordHash: string(h), CreatedAt: now}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, created_at) VALUES (?,?,?,?)`,
		u.ID, u.Username, u.PasswordHash, now.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Server) findUserByUsername(ctx context.Context, username string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                      FROM users WHERE lower(username)=lower(?)`, username)
	return scanUser(row)
}
func (s *Server) findUserByID(ctx context.Context, id string) (*userRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, username, password_hash, created_at, games_played, wins, streak
	                      FROM users WHERE id=?`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*userRow, error) {
	var u userRow
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created, &u.GamesPlayed, &u.Wins, &u.Streak); err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &u, nil
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// validateSignup: 3 to 24 word characters, passwords 8 to 100 bytes.
func validateSignup(u, p string) error {
	if len(u) < 3 || len(u) > 24 {
		return validationError("username must be 3–24 chars")
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return validationError("username: letters, numbers, underscore only")
		}
	}
	if len(p) < 8 || len(p) > 100 {
		return validationError("password must be 8–100 chars")
	}
	return nil
}

// genID returns 128 random bits, base64url without padding.
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// bumpStats counts a finished game. A loss resets the streak.
func bumpStats(tx *sql.Tx, userID string, won bool) error {
	win := 0
	if won {
		win = 1
	}
	_, err := tx.Exec(`UPDATE users
	                   SET games_played = games_played + 1,
	                       wins = wins + ?,
	                       streak = CASE WHEN ? = 1 THEN streak + 1 ELSE 0 END
	                   WHERE id=?`, win, win, userID)
	return err
}

// ------------------------------ JWT & cookies ------------------------------

// playerClaims is the token body: the user ID travels as the subject.
type playerClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// signToken returns an HS256 token for the player and its expiry.
func (s *Server) signToken(u *userRow) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(time.Duration(s.cfg.JWTExpiresDays) * 24 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, playerClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString([]byte(s.cfg.JWTSecret))
	return signed, exp, err
}

// sameSite is None in production (third‑party contexts need it with Secure), Lax otherwise.
func (s *Server) sameSite() http.SameSite {
	if s.cfg.Production {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// setAuthCookie writes the auth token cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: s.sameSite(),
		Expires:  exp,
	})
}

// clearAuthCookie deletes the auth token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.Production,
		SameSite: s.sameSite(),
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or auth cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}
