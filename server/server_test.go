package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	"github.com/jrsteele09/linkedin-post-stats/server"
	fakesessionrepo "github.com/jrsteele09/linkedin-post-stats/sessions/repofakes"
	fakeuserrepo "github.com/jrsteele09/linkedin-post-stats/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	testClientBaseURL = "http://localhost:3000"
	goodCode          = "good-code"
	revokedCode       = "revoked-code"
	goodToken         = "good-token"
	revokedToken      = "revoked-token"
	postURNPath       = "/v2/socialActions/urn:li:ugcPost:7000000000000000000"
)

// newFakeLinkedIn serves the token, socialActions, discovery and userinfo
// endpoints from one server.
func newFakeLinkedIn(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		bearer := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		switch r.URL.Path {
		case "/oauth/v2/accessToken":
			_ = r.ParseForm()
			switch r.PostForm.Get("code") {
			case goodCode:
				_, _ = w.Write([]byte(`{"access_token":"` + goodToken + `","expires_in":5184000}`))
			case revokedCode:
				_, _ = w.Write([]byte(`{"access_token":"` + revokedToken + `","expires_in":5184000}`))
			default:
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			}
		case postURNPath:
			if bearer != goodToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"numShares":3,"numComments":1,"numLikes":5}`))
		case "/.well-known/openid-configuration":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"issuer":            srv.URL,
				"userinfo_endpoint": srv.URL + "/v2/userinfo",
				"jwks_uri":          srv.URL + "/oauth/openid/jwks",
			})
		case "/v2/userinfo":
			if bearer != goodToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"sub":"member-1","name":"Alice Example"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	li := newFakeLinkedIn(t)

	t.Setenv("ENV", "TEST")
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("CLIENT_BASE_URL", testClientBaseURL)
	t.Setenv("LINKEDIN_CLIENT_ID", "li-client")
	t.Setenv("LINKEDIN_CLIENT_SECRET", "li-secret")
	t.Setenv("LINKEDIN_POST_ID", "7000000000000000000")
	t.Setenv("LINKEDIN_AUTH_URL", li.URL+"/oauth/v2/authorization")
	t.Setenv("LINKEDIN_TOKEN_URL", li.URL+"/oauth/v2/accessToken")
	t.Setenv("LINKEDIN_API_BASE_URL", li.URL+"/v2")
	t.Setenv("LINKEDIN_OIDC_ISSUER", li.URL)
	cfg, err := config.New()
	require.NoError(t, err)

	s, err := server.New(cfg, server.Repos{
		Users:    fakeuserrepo.NewFakeUserRepo(),
		Sessions: fakesessionrepo.NewFakeSessionRepo(),
	})
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, target, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		r.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

// registerAndLogin returns the session cookie of a fresh login.
func registerAndLogin(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/register", `{"username":"alice","password":"correct"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = do(t, h, http.MethodPost, "/login", `{"username":"alice","password":"correct"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

// connectLinkedIn runs the OAuth round trip with code.
func connectLinkedIn(t *testing.T, h http.Handler, cookie *http.Cookie, code string) {
	t.Helper()
	rec := do(t, h, http.MethodGet, "/linkedin/auth", "", cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	state := u.Query().Get("state")

	rec = do(t, h, http.MethodGet, "/linkedin/callback?code="+code+"&state="+url.QueryEscape(state), "", cookie)
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	require.Equal(t, testClientBaseURL+"/?isLoggedIn=true&linkedInAuthenticated=true", rec.Header().Get("Location"))
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/register", `{"username":"alice","password":"correct"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "User registered successfully", decode(t, rec)["message"])
	require.Empty(t, rec.Result().Cookies())

	rec = do(t, s, http.MethodPost, "/register", `{"username":"alice","password":"other"}`, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "Username already exists.", decode(t, rec)["error"])

	rec = do(t, s, http.MethodPost, "/register", `{"username":"","password":"x"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Username is required.", decode(t, rec)["error"])

	rec = do(t, s, http.MethodPost, "/register", `{"username":"bob","password":"`+strings.Repeat("p", 80)+`"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Password is too long.", decode(t, rec)["error"])

	rec = do(t, s, http.MethodPost, "/register", `{"username":5}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/register", `not json`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/register", `{"username":"alice","password":"correct"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{name: "unknown user", body: `{"username":"bob","password":"correct"}`, status: http.StatusUnauthorized, message: "Incorrect username."},
		{name: "wrong password", body: `{"username":"alice","password":"wrong"}`, status: http.StatusUnauthorized, message: "Incorrect password."},
		{name: "missing password", body: `{"username":"alice"}`, status: http.StatusBadRequest, message: "Missing credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/login", tt.body, nil)
			require.Equal(t, tt.status, rec.Code)
			require.Equal(t, tt.message, decode(t, rec)["message"])
			require.Empty(t, rec.Result().Cookies())
		})
	}

	t.Run("success", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/login", `{"username":"alice","password":"correct"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		require.Equal(t, "Login successful", body["message"])
		user := body["user"].(map[string]interface{})
		require.Equal(t, "alice", user["username"])
		require.NotEmpty(t, user["id"])

		cookie := sessionCookie(t, rec)
		require.True(t, cookie.HttpOnly)
		require.False(t, cookie.Secure)
		require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
		require.Equal(t, 86400, cookie.MaxAge)
	})

	t.Run("form encoded", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("username=alice&password=correct"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestProtectedAndLogout(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/protected", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Unauthorized", decode(t, rec)["message"])

	cookie := registerAndLogin(t, s)
	rec = do(t, s, http.MethodGet, "/protected", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Protected route access granted", decode(t, rec)["message"])

	rec = do(t, s, http.MethodGet, "/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Logout successful", decode(t, rec)["message"])
	cleared := sessionCookie(t, rec)
	require.Equal(t, -1, cleared.MaxAge)

	rec = do(t, s, http.MethodGet, "/protected", "", cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// logging out again is still a success
	rec = do(t, s, http.MethodGet, "/logout", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLinkedInFlow(t *testing.T) {
	s := newTestServer(t)
	cookie := registerAndLogin(t, s)

	rec := do(t, s, http.MethodGet, "/linkedin/isLinkedInAuthenticated", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decode(t, rec)["linkedInAuthenticated"])

	rec = do(t, s, http.MethodGet, "/linkedin/stats", "", cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Not Authorized", decode(t, rec)["message"])

	connectLinkedIn(t, s, cookie, goodCode)

	rec = do(t, s, http.MethodGet, "/linkedin/isLinkedInAuthenticated", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, decode(t, rec)["linkedInAuthenticated"])

	rec = do(t, s, http.MethodGet, "/linkedin/stats", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"shares":3,"comments":1,"likes":5}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/linkedin/profile", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Alice Example", decode(t, rec)["name"])

	rec = do(t, s, http.MethodPost, "/linkedin/disconnect", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, s, http.MethodGet, "/linkedin/isLinkedInAuthenticated", "", cookie)
	require.Equal(t, false, decode(t, rec)["linkedInAuthenticated"])
}

func TestLinkedInRejectedToken(t *testing.T) {
	s := newTestServer(t)
	cookie := registerAndLogin(t, s)
	connectLinkedIn(t, s, cookie, revokedCode)

	rec := do(t, s, http.MethodGet, "/linkedin/stats", "", cookie)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, decode(t, rec)["error"])

	// the token stays attached until the client disconnects
	rec = do(t, s, http.MethodGet, "/linkedin/isLinkedInAuthenticated", "", cookie)
	require.Equal(t, true, decode(t, rec)["linkedInAuthenticated"])
}

func TestLinkedInCallbackFailures(t *testing.T) {
	s := newTestServer(t)
	cookie := registerAndLogin(t, s)

	t.Run("no session", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/linkedin/callback?code="+goodCode+"&state=abc", "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forged state", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/linkedin/auth", "", cookie)
		require.Equal(t, http.StatusFound, rec.Code)
		rec = do(t, s, http.MethodGet, "/linkedin/callback?code="+goodCode+"&state=forged", "", cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("exchange rejected", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/linkedin/auth", "", cookie)
		require.Equal(t, http.StatusFound, rec.Code)
		u, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		rec = do(t, s, http.MethodGet, "/linkedin/callback?code=bad-code&state="+url.QueryEscape(u.Query().Get("state")), "", cookie)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "LinkedIn OAuth failed")

		rec = do(t, s, http.MethodGet, "/linkedin/isLinkedInAuthenticated", "", cookie)
		require.Equal(t, false, decode(t, rec)["linkedInAuthenticated"])
	})

	t.Run("linkedin routes need a session", func(t *testing.T) {
		for _, target := range []string{"/linkedin/auth", "/linkedin/isLinkedInAuthenticated", "/linkedin/stats", "/linkedin/profile"} {
			rec := do(t, s, http.MethodGet, target, "", nil)
			require.Equal(t, http.StatusUnauthorized, rec.Code, target)
		}
	})
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	r := httptest.NewRequest(http.MethodOptions, "/login", nil)
	r.Header.Set("Origin", testClientBaseURL)
	r.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	require.Equal(t, testClientBaseURL, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	r = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode(t, rec)["status"])
}
