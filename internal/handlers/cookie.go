package handlers

import (
	"time"

	"github.com/arzan03/lingo/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// CookiePolicy holds the attributes of the session cookie.
type CookiePolicy struct {
	Production bool
	TTL        time.Duration
}

func (p CookiePolicy) base() *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     middleware.CookieName,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	// cross-site clients in production need SameSite=None, which requires Secure
	if p.Production {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteNoneMode
	}
	return cookie
}

func (p CookiePolicy) session(value string) *fiber.Cookie {
	cookie := p.base()
	cookie.Value = value
	cookie.MaxAge = int(p.TTL.Seconds())
	cookie.Expires = time.Now().Add(p.TTL)
	return cookie
}

func (p CookiePolicy) cleared() *fiber.Cookie {
	cookie := p.base()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	return cookie
}
