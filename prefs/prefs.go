// Package prefs persists small UI preferences as JSON values in browser
// cookies: values are serialized, percent-encoded, and scoped to the whole
// site with a lax same-site policy. There is no in-process cache; the
// browser's cookie jar owns the state.
package prefs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// LongLivedTTL is the expiry used by SetLongLived: 400 days, the practical
// upper bound many browsers enforce on cookie lifetime.
const LongLivedTTL = 400 * 24 * time.Hour

// Set writes a preference cookie. The value is JSON-serialized and
// percent-encoded. A zero ttl produces a session cookie (no Max-Age);
// a positive ttl sets an explicit Max-Age.
func Set(w http.ResponseWriter, name string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode preference %q: %w", name, err)
	}
	c := &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(string(data)),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, c)
	return nil
}

// SetLongLived writes a preference that outlives the browser session,
// capped at LongLivedTTL.
func SetLongLived(w http.ResponseWriter, name string, value any) error {
	return Set(w, name, value, LongLivedTTL)
}

// Get reads a preference from the request's cookies. An absent cookie, a
// value that fails to decode, and malformed stored JSON all yield def; a
// corrupt preference degrades to the default rather than erroring.
func Get[T any](r *http.Request, name string, def T) T {
	c, err := r.Cookie(name)
	if err != nil {
		return def
	}
	raw, err := url.QueryUnescape(c.Value)
	if err != nil {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Delete removes a preference cookie.
func Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	})
}
