package prefs

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"
)

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

// requestWith carries cookies from a recorded response into a fresh
// request, the way a browser would on the next page load.
func requestWith(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	return r
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"string", "dark"},
		{"number", float64(42)},
		{"object", map[string]any{"a": float64(1), "b": []any{"x", "y"}}},
		{"bool", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			if err := Set(rec, "pref", tt.value, 0); err != nil {
				t.Fatalf("Set: %v", err)
			}

			got := Get[any](requestWith(rec), "pref", nil)
			if !reflect.DeepEqual(got, tt.value) {
				t.Errorf("Get = %#v; want %#v", got, tt.value)
			}
		})
	}
}

func TestCookieAttributes(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := Set(rec, "layout", "grid", 3600*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c := findCookie(t, rec, "layout")
	if c.Path != "/" {
		t.Errorf("Path = %q; want /", c.Path)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v; want lax", c.SameSite)
	}
	if c.MaxAge != 3600 {
		t.Errorf("MaxAge = %d; want 3600", c.MaxAge)
	}
}

func TestSessionCookieHasNoMaxAge(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := Set(rec, "pref", map[string]int{"a": 1}, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	c := findCookie(t, rec, "pref")
	if c.MaxAge != 0 {
		t.Errorf("MaxAge = %d; want unset for session cookie", c.MaxAge)
	}
	header := rec.Header().Get("Set-Cookie")
	if strings.Contains(strings.ToLower(header), "max-age") {
		t.Errorf("Set-Cookie %q carries a Max-Age attribute", header)
	}

	// Within the session the value reads back.
	got := Get[map[string]int](requestWith(rec), "pref", nil)
	if got["a"] != 1 {
		t.Errorf(`Get = %v; want map[a:1]`, got)
	}

	// After cookie deletion the default comes back.
	fallback := Get[map[string]int](httptest.NewRequest(http.MethodGet, "/", nil), "pref", map[string]int{"d": 9})
	if fallback["d"] != 9 {
		t.Errorf("Get after deletion = %v; want supplied default", fallback)
	}
}

func TestLongLivedTTL(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := SetLongLived(rec, "theme", "dark"); err != nil {
		t.Fatalf("SetLongLived: %v", err)
	}

	c := findCookie(t, rec, "theme")
	if want := int(400 * 24 * time.Hour / time.Second); c.MaxAge != want {
		t.Errorf("MaxAge = %d; want %d (400 days)", c.MaxAge, want)
	}
}

func TestGetMalformedJSONFallsBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "pref", Value: url.QueryEscape(`{"broken`)})

	if got := Get(r, "pref", "default"); got != "default" {
		t.Errorf("Get with malformed JSON = %q; want default", got)
	}
}

func TestGetMalformedEncodingFallsBack(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "pref", Value: "%GG"})

	if got := Get(r, "pref", 7); got != 7 {
		t.Errorf("Get with malformed encoding = %d; want default", got)
	}
}

func TestDelete(t *testing.T) {
	rec := httptest.NewRecorder()
	Delete(rec, "theme")

	c := findCookie(t, rec, "theme")
	if c.MaxAge >= 0 {
		t.Errorf("MaxAge = %d; want negative for deletion", c.MaxAge)
	}
}
