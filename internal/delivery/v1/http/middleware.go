package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront-gateway/pkg/logger"
	"github.com/google/uuid"
)

const clientCookieName = "sg_client"

// clientID возвращает идентификатор клиента из cookie, пустую строку если его нет.
func clientID(r *http.Request) string {
	cookie, err := r.Cookie(clientCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// ClientIDMiddleware выдает новому клиенту витрины UUID в cookie.
// Идентификатор привязывает историю поиска и просмотров к браузеру.
func ClientIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie(clientCookieName); err != nil {
			id := uuid.NewString()
			cookie := &http.Cookie{
				Name:     clientCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			}
			http.SetCookie(w, cookie)
			r.AddCookie(cookie)
		}

		next.ServeHTTP(w, r)
	})
}

// LoggingMiddleware пишет строку доступа на каждый запрос.
func LoggingMiddleware(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.Debugf("%s %s %s", r.Method, r.URL.RequestURI(), time.Since(start))
		})
	}
}
