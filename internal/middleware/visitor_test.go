package middleware

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
)

type tabLog struct {
	mu      sync.Mutex
	touched []string
}

func (l *tabLog) Touch(tabID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.touched = append(l.touched, tabID)
}

func newVisitorApp(t *testing.T) *fiber.App {
	t.Helper()
	return newTrackedVisitorApp(t, nil)
}

func newTrackedVisitorApp(t *testing.T, tabs TabTracker) *fiber.App {
	t.Helper()
	app := fiber.New()
	sessionMiddleware, _ := session.NewWithStore(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
	app.Use(sessionMiddleware)

	app.Post("/login", func(c fiber.Ctx) error {
		session.FromContext(c).Set(userSubKey, "alice")
		return c.SendString("ok")
	})

	app.Get("/whoami", NewVisitorMiddleware(false, tabs).Identify, func(c fiber.Ctx) error {
		v, ok := VisitorFrom(c)
		if !ok {
			return c.Status(500).SendString("no visitor")
		}
		return c.SendString(v.TabID + "|" + v.DeviceID)
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, cookies []*http.Cookie) (tab, device string, set []*http.Cookie) {
	t.Helper()
	req, _ := http.NewRequest("GET", "/whoami", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	parts := strings.SplitN(string(body), "|", 2)
	if len(parts) != 2 {
		t.Fatalf("unexpected body %q", body)
	}
	return parts[0], parts[1], resp.Cookies()
}

func cookieNamed(cookies []*http.Cookie, name string) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range cookies {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func TestIdentify_StableAcrossRequests(t *testing.T) {
	app := newVisitorApp(t)

	tab1, dev1, cookies := whoami(t, app, nil)
	if tab1 == "" || !strings.HasPrefix(dev1, "device:") {
		t.Fatalf("first visit = %q, %q", tab1, dev1)
	}

	tab2, dev2, _ := whoami(t, app, cookies)
	if tab2 != tab1 || dev2 != dev1 {
		t.Errorf("second visit = %q, %q; want %q, %q", tab2, dev2, tab1, dev1)
	}
}

func TestIdentify_NewTabSameDevice(t *testing.T) {
	app := newVisitorApp(t)

	tab1, dev1, cookies := whoami(t, app, nil)

	// A new tab arrives without the session cookie but keeps the device cookie.
	tab2, dev2, _ := whoami(t, app, cookieNamed(cookies, DeviceCookie))
	if tab2 == tab1 {
		t.Error("new session reused the tab ID")
	}
	if dev2 != dev1 {
		t.Errorf("device = %q, want %q", dev2, dev1)
	}
}

func TestIdentify_SignedInUsesAccount(t *testing.T) {
	app := newVisitorApp(t)

	req, _ := http.NewRequest("POST", "/login", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}

	_, device, _ := whoami(t, app, resp.Cookies())
	if device != "user:alice" {
		t.Errorf("device = %q, want user:alice", device)
	}
}

func TestIdentify_InvalidDeviceCookieReplaced(t *testing.T) {
	app := newVisitorApp(t)

	_, device, set := whoami(t, app, []*http.Cookie{{Name: DeviceCookie, Value: "not-a-uuid"}})
	if device == "device:not-a-uuid" {
		t.Error("invalid device cookie accepted")
	}
	if len(cookieNamed(set, DeviceCookie)) == 0 {
		t.Error("no replacement device cookie set")
	}
}

func TestIdentify_TouchesTabOnEveryRequest(t *testing.T) {
	tabs := &tabLog{}
	app := newTrackedVisitorApp(t, tabs)

	tab, _, cookies := whoami(t, app, nil)
	whoami(t, app, cookies)

	if len(tabs.touched) != 2 || tabs.touched[0] != tab || tabs.touched[1] != tab {
		t.Errorf("touched = %v, want [%s %s]", tabs.touched, tab, tab)
	}
}
