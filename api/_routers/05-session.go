package _routers

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/julender/julender/common"
	"github.com/julender/julender/common/config"
	"github.com/julender/julender/util"
)

var sessionIdRegex = regexp.MustCompile("^[a-f0-9]{40}$")

type SessionRouter struct {
	next http.Handler
	conf config.SessionsConfig
}

func NewSessionRouter(conf config.SessionsConfig, next http.Handler) *SessionRouter {
	return &SessionRouter{next: next, conf: conf}
}

func (s *SessionRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionId := ""
	if cookie, err := r.Cookie(s.conf.CookieName); err == nil && sessionIdRegex.MatchString(cookie.Value) {
		sessionId = cookie.Value
	}

	if sessionId == "" {
		generated, err := util.GenerateRandomString(32)
		if err != nil {
			// The request still works, it just won't remember anything
			sentry.CaptureException(err)
			GetLogger(r).Warn("Failed to generate session id: ", err)
		} else {
			sessionId = generated
			http.SetCookie(w, &http.Cookie{
				Name:     s.conf.CookieName,
				Value:    sessionId,
				Path:     "/",
				MaxAge:   int((time.Duration(s.conf.TtlHours) * time.Hour).Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}

	r = r.WithContext(context.WithValue(r.Context(), common.ContextSessionId, sessionId))

	if s.next != nil {
		s.next.ServeHTTP(w, r)
	}
}

func GetSessionId(r *http.Request) string {
	x, ok := r.Context().Value(common.ContextSessionId).(string)
	if !ok {
		return ""
	}
	return x
}
