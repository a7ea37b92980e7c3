package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"
)

// baseURL returns the storefront origin under test. Override with SITE_URL
// when the server runs somewhere other than localhost:8080.
func baseURL() string {
	if v := os.Getenv("SITE_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

// uniqueName generates a unique product name to avoid test collisions.
func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d-%d", prefix, time.Now().UnixNano(), rand.Intn(100000))
}

// skipIfNotRunning performs a quick health check against the storefront.
// If it is unreachable, the test is skipped (not failed).
func skipIfNotRunning(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(baseURL() + "/health/live")
	if err != nil {
		t.Skipf("storefront at %s not reachable: %v", baseURL(), err)
	}
	resp.Body.Close()
}

// newSessionClient returns an HTTP client with a cookie jar, so the admin
// session cookie set by login sticks to subsequent requests.
func newSessionClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{Timeout: 10 * time.Second, Jar: jar}
}

// adminLogin authenticates against the back-office and returns a client
// carrying the session cookie. Skips the test when login is rejected,
// which happens when ADMIN_PASSWORD differs from the running server's.
func adminLogin(t *testing.T) *http.Client {
	t.Helper()
	client := newSessionClient(t)

	user := os.Getenv("ADMIN_USER")
	if user == "" {
		user = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")

	status, _ := httpPost(t, client, baseURL()+"/api/v1/admin/login", map[string]any{
		"username": user,
		"password": password,
	})
	if status != http.StatusOK {
		t.Skipf("admin login returned %d; set ADMIN_USER/ADMIN_PASSWORD to match the server", status)
	}
	return client
}

// httpGet performs a GET request and returns the status code and decoded JSON body.
func httpGet(t *testing.T, client *http.Client, url string) (int, map[string]any) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp)
}

// httpPost performs a POST request with a JSON body.
func httpPost(t *testing.T, client *http.Client, url string, body any) (int, map[string]any) {
	t.Helper()
	return httpDo(t, client, http.MethodPost, url, body)
}

// httpDo performs a request with an optional JSON body.
func httpDo(t *testing.T, client *http.Client, method, url string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body for %s %s: %v", method, url, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("create %s request for %s: %v", method, url, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp)
}

// httpUpload posts a multipart file upload under the "file" field.
func httpUpload(t *testing.T, client *http.Client, url, filename string, content []byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		t.Fatalf("create upload request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return map[string]any{}
	}
	return body
}

// requireStatus fails the test when the status does not match.
func requireStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Fatalf("unexpected status: got %d, want %d", got, want)
	}
}

// extractString pulls a dotted path like "data.id" out of a decoded body.
func extractString(t *testing.T, body map[string]any, path string) string {
	t.Helper()
	parts := strings.Split(path, ".")
	var current any = body
	for _, p := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			t.Fatalf("path %q: %q is not an object", path, p)
		}
		current, ok = m[p]
		if !ok {
			t.Fatalf("path %q: missing key %q", path, p)
		}
	}
	s, ok := current.(string)
	if !ok {
		t.Fatalf("path %q: value is not a string", path)
	}
	return s
}
