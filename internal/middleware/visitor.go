package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
	"github.com/google/uuid"

	"days/internal/models"
)

const (
	// DeviceCookie holds the long-lived anonymous device ID.
	DeviceCookie = "days_device"

	visitorKey   = "visitor"
	tabKey       = "tab_id"
	userSubKey   = "user_sub"
	deviceMaxAge = 365 * 24 * time.Hour
)

// TabTracker is told about every request a tab makes.
type TabTracker interface {
	Touch(tabID string)
}

// VisitorMiddleware identifies who is calling. The session scopes the tab;
// the signed-in account, or a device cookie, scopes everything longer lived.
type VisitorMiddleware struct {
	secure bool
	tabs   TabTracker
}

// NewVisitorMiddleware creates the middleware. secure marks the device
// cookie Secure. tabs may be nil.
func NewVisitorMiddleware(secure bool, tabs TabTracker) *VisitorMiddleware {
	return &VisitorMiddleware{secure: secure, tabs: tabs}
}

// Identify stores the caller's models.Visitor in the request locals.
func (m *VisitorMiddleware) Identify(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	tabID, _ := sess.Get(tabKey).(string)
	if tabID == "" {
		tabID = uuid.NewString()
		sess.Set(tabKey, tabID)
	}
	if m.tabs != nil {
		m.tabs.Touch(tabID)
	}

	c.Locals(visitorKey, models.Visitor{
		TabID:    tabID,
		DeviceID: m.deviceID(c, sess),
	})
	return c.Next()
}

func (m *VisitorMiddleware) deviceID(c fiber.Ctx, sess *session.Middleware) string {
	if sub, ok := sess.Get(userSubKey).(string); ok && sub != "" {
		return "user:" + sub
	}

	if id, err := uuid.Parse(c.Cookies(DeviceCookie)); err == nil {
		return "device:" + id.String()
	}

	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     DeviceCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(deviceMaxAge.Seconds()),
		Secure:   m.secure,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return "device:" + id
}

// VisitorFrom returns the visitor stored by Identify.
func VisitorFrom(c fiber.Ctx) (models.Visitor, bool) {
	v, ok := c.Locals(visitorKey).(models.Visitor)
	return v, ok
}

// ClearTab forgets the tab ID so the next request starts a new tab.
func ClearTab(c fiber.Ctx) {
	if sess := session.FromContext(c); sess != nil {
		sess.Delete(tabKey)
	}
}
