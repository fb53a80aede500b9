package webpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testPage = `<!DOCTYPE html>
<html>
<head>
<title>Duomo di Milano</title>
<meta name='description' content='Visiting the Milan cathedral'>
<meta property='og:site_name' content='Milan Guide'>
<script>console.log("tracking")</script>
</head>
<body>
<nav><a href='/'>Home</a></nav>
<main>
<h1>Duomo di Milano</h1>
<p>The cathedral took nearly six centuries to complete.</p>
<a href='/tickets'>Buy tickets</a>
</main>
<footer>About us</footer>
</body>
</html>`

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("user agent = %q", got)
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	tool := New()
	output, err := tool.Run(context.Background(), NewInput(srv.URL))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(output.Content, "Duomo di Milano") {
		t.Errorf("content missing heading:\n%s", output.Content)
	}
	if !strings.Contains(output.Content, "six centuries") {
		t.Errorf("content missing body text:\n%s", output.Content)
	}
	// navigation, footer and scripts are stripped with their containers
	for _, unwanted := range []string{"Home", "About us", "tracking"} {
		if strings.Contains(output.Content, unwanted) {
			t.Errorf("content keeps stripped element %q:\n%s", unwanted, output.Content)
		}
	}
	// relative links resolve against the page origin
	if !strings.Contains(output.Content, srv.URL+"/tickets") {
		t.Errorf("relative link not resolved:\n%s", output.Content)
	}
	if output.Metadata == nil {
		t.Fatal("missing metadata")
	}
	if output.Metadata.Title != "Duomo di Milano" || output.Metadata.SiteName != "Milan Guide" {
		t.Errorf("unexpected metadata: %+v", output.Metadata)
	}
	if output.Metadata.Description != "Visiting the Milan cathedral" {
		t.Errorf("unexpected description: %q", output.Metadata.Description)
	}
}

func TestRunContentCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><main><p>" + strings.Repeat("lorem ipsum ", 200) + "</p></main></body></html>"))
	}))
	defer srv.Close()

	tool := New(WithMaxContentLength(64))
	output, err := tool.Run(context.Background(), NewInput(srv.URL))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(output.Content) > 64 {
		t.Errorf("content not capped: %d bytes", len(output.Content))
	}
}

func TestRunNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	tool := New()
	if _, err := tool.Run(context.Background(), NewInput(srv.URL)); err == nil {
		t.Fatal("expect error on status 404")
	}
}

func TestRunBadURL(t *testing.T) {
	tool := New()
	if _, err := tool.Run(context.Background(), NewInput("not a url")); err == nil {
		t.Fatal("expect error for malformed URL")
	}
}
