package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/npezzotti/go-forum/internal/database"
	"github.com/npezzotti/go-forum/internal/stats"
	"github.com/npezzotti/go-forum/internal/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultJwtExpiration = time.Hour * 24
	tokenCookieKey       = "token"

	userIdClaim = "user-id"
	expClaim    = "exp"

	minPasswordLength = 8
)

type contextKey string

const userIdKey contextKey = "user-id"

func UserId(ctx context.Context) (int, bool) {
	userId, ok := ctx.Value(userIdKey).(int)

	return userId, ok
}

func WithUserId(ctx context.Context, userId int) context.Context {
	return context.WithValue(ctx, userIdKey, userId)
}

func hashPassword(passwd string) (string, error) {
	passwdHash, err := bcrypt.GenerateFromPassword([]byte(passwd), bcrypt.DefaultCost)
	return string(passwdHash), err
}

func verifyPassword(passwdHash, passwd string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(passwdHash), []byte(passwd))
	return err == nil
}

func (s *ForumApp) createJwtForSession(userId int, exp time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		userIdClaim: userId,
		expClaim:    time.Now().Add(exp).Unix(),
	})

	return token.SignedString(s.signingKey)
}

func createJwtCookie(tokenString string, exp time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieKey,
		Value:    tokenString,
		Path:     "/",
		Expires:  time.Now().Add(exp),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
}

func (s *ForumApp) extractUserIdFromToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.signingKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid token claims")
	}

	userId, ok := claims[userIdClaim].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid user id claim")
	}

	return int(userId), nil
}

// currentUser resolves the session user on pages where authentication
// is optional. Returns nil if there is no valid session.
func (s *ForumApp) currentUser(r *http.Request) *types.User {
	tokenCookie, err := r.Cookie(tokenCookieKey)
	if err != nil {
		return nil
	}

	userId, err := s.extractUserIdFromToken(tokenCookie.Value)
	if err != nil {
		return nil
	}

	user, err := s.db.GetAccountById(userId)
	if err != nil {
		return nil
	}

	u := toUser(user)
	return &u
}

type loginPageData struct {
	CurrentUser *types.User
	Page        string
	Username    string
	Errors      []string
}

func (s *ForumApp) login(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := loginPageData{Page: "login"}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "login_register", data)
	case http.MethodPost:
		username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
		password := r.FormValue("password")
		data.Username = username

		// a single generic message for unknown users and bad
		// passwords, the response must not reveal whether the
		// username exists
		user, err := s.db.GetAccountByUsername(username)
		if err != nil || !verifyPassword(user.PasswordHash, password) {
			data.Errors = append(data.Errors, "Invalid credentials")
			s.render(w, http.StatusOK, "login_register", data)
			return
		}

		token, err := s.createJwtForSession(user.Id, defaultJwtExpiration)
		if err != nil {
			s.log.Printf("create session token: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *ForumApp) register(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := loginPageData{Page: "register"}

	switch r.Method {
	case http.MethodGet:
		s.render(w, http.StatusOK, "login_register", data)
	case http.MethodPost:
		username := strings.ToLower(strings.TrimSpace(r.FormValue("username")))
		password := r.FormValue("password1")
		confirmation := r.FormValue("password2")
		data.Username = username

		if username == "" {
			data.Errors = append(data.Errors, "Username is required")
		}
		if len(password) < minPasswordLength {
			data.Errors = append(data.Errors, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		}
		if password != confirmation {
			data.Errors = append(data.Errors, "Passwords do not match")
		}
		if len(data.Errors) > 0 {
			s.render(w, http.StatusOK, "login_register", data)
			return
		}

		pwdHash, err := hashPassword(password)
		if err != nil {
			s.log.Printf("hash password: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		user, err := s.db.CreateAccount(database.CreateAccountParams{
			Username:     username,
			Email:        strings.TrimSpace(r.FormValue("email")),
			PasswordHash: pwdHash,
		})
		if err != nil {
			if database.IsUniqueViolation(err) {
				data.Errors = append(data.Errors, "Username is already taken")
				s.render(w, http.StatusOK, "login_register", data)
				return
			}

			s.log.Printf("create account: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		s.stats.Incr(stats.AccountsCreated)

		token, err := s.createJwtForSession(user.Id, defaultJwtExpiration)
		if err != nil {
			s.log.Printf("create session token: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, createJwtCookie(token, defaultJwtExpiration))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.methodNotAllowed(w)
	}
}

func (s *ForumApp) logout(w http.ResponseWriter, r *http.Request) {
	// instruct browser to delete cookie by overwriting it with an expired token
	http.SetCookie(w, createJwtCookie("", time.Duration(time.Unix(0, 0).Unix())))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
