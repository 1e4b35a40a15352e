package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestPublicHomepage(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	rr := getJSON(t, r, "/")
	mustStatus(t, rr.Code, http.StatusOK, rr.Body.String())
	if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type: got %q, want text/html", ct)
	}
}

func TestPublicPostPage(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	suffix := uuid.NewString()[:8]
	title := "Public Page " + suffix
	slug := "public-page-" + suffix
	category := "public-cat-" + suffix
	cleanPost(t, db, slug, []string{category}, nil)

	rr := postJSON(t, r, "/posts", map[string]any{
		"title": title, "slug": slug, "content": "# Heading\n\nBody text.",
		"excerpt": "e", "category": category,
	})
	mustStatus(t, rr.Code, http.StatusCreated, rr.Body.String())

	rr = getJSON(t, r, "/blog/"+slug)
	mustStatus(t, rr.Code, http.StatusOK, rr.Body.String())
	if !strings.Contains(rr.Body.String(), title) {
		t.Error("post page does not contain the post title")
	}
	// Markdown content is rendered to HTML.
	if !strings.Contains(rr.Body.String(), "<h1") {
		t.Error("markdown heading was not rendered")
	}
}

func TestPublicPostPageNotFound(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	rr := getJSON(t, r, "/blog/no-such-page-"+uuid.NewString()[:8])
	mustStatus(t, rr.Code, http.StatusNotFound, rr.Body.String())
}

func TestPublicCreateForm(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	suffix := uuid.NewString()[:8]
	title := "Form Post " + suffix
	slug := "form-post-" + suffix
	category := "form-cat-" + suffix
	tags := []string{"form-a-" + suffix, "form-b-" + suffix}
	cleanPost(t, db, slug, []string{category}, tags)

	// The empty form renders.
	rr := getJSON(t, r, "/blog/new")
	mustStatus(t, rr.Code, http.StatusOK, rr.Body.String())

	// A valid submission redirects to the new post.
	form := url.Values{
		"title":    {title},
		"excerpt":  {"Form excerpt."},
		"category": {category},
		"tags":     {"form-a-" + suffix + ", form-b-" + suffix + ", "},
		"content":  {"Form content."},
	}
	req := httptest.NewRequest(http.MethodPost, "/blog/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	mustStatus(t, rec.Code, http.StatusSeeOther, rec.Body.String())
	if loc := rec.Header().Get("Location"); loc != "/blog/"+slug {
		t.Errorf("redirect: got %q, want %q", loc, "/blog/"+slug)
	}

	// A missing field re-renders the form with an error.
	form.Del("excerpt")
	req = httptest.NewRequest(http.MethodPost, "/blog/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	mustStatus(t, rec.Code, http.StatusBadRequest, rec.Body.String())
	if !strings.Contains(rec.Body.String(), "required") {
		t.Error("form error message missing")
	}
}
