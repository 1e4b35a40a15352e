package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

func postJSON(t *testing.T, r http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func getJSON(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestAPICreateAndGetPost(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	suffix := uuid.NewString()[:8]
	title := "Api Create " + suffix
	wantSlug := "api-create-" + suffix
	category := "api-cat-" + suffix
	tags := []string{"api-tag-" + suffix}
	cleanPost(t, db, wantSlug, []string{category}, tags)

	rr := postJSON(t, r, "/posts", map[string]any{
		"title":    title,
		"slug":     "client-supplied-and-ignored",
		"content":  "API content.",
		"excerpt":  "API excerpt.",
		"category": category,
		"tags":     tags,
	})
	mustStatus(t, rr.Code, http.StatusCreated, rr.Body.String())

	var created models.Blog
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.Slug != wantSlug {
		t.Errorf("slug: got %q, want server-derived %q", created.Slug, wantSlug)
	}
	if created.Title != title {
		t.Errorf("title: got %q, want %q", created.Title, title)
	}

	// Fetch the composed view.
	rr = getJSON(t, r, "/posts/"+wantSlug)
	mustStatus(t, rr.Code, http.StatusOK, rr.Body.String())

	var composed models.BlogWithRelations
	if err := json.Unmarshal(rr.Body.Bytes(), &composed); err != nil {
		t.Fatalf("decode composed: %v", err)
	}
	if composed.Blog.Slug != wantSlug {
		t.Errorf("composed blog slug: got %q, want %q", composed.Blog.Slug, wantSlug)
	}
	if composed.Related == nil {
		t.Error("related must be an empty array, not null")
	}
	if len(composed.Related) > 3 {
		t.Errorf("related size: got %d, want at most 3", len(composed.Related))
	}

	// The new post appears in the listing.
	rr = getJSON(t, r, "/posts")
	mustStatus(t, rr.Code, http.StatusOK, rr.Body.String())
	var listed []models.Blog
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	found := false
	for _, b := range listed {
		if b.Slug == wantSlug {
			found = true
		}
	}
	if !found {
		t.Error("created post missing from /posts listing")
	}
}

func TestAPICreateMissingField(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	suffix := uuid.NewString()[:8]
	category := "api-val-" + suffix
	cleanPost(t, db, "", []string{category}, nil)

	fields := map[string]string{
		"title":    "Api Validation " + suffix,
		"slug":     "api-validation-" + suffix,
		"content":  "c",
		"excerpt":  "e",
		"category": category,
	}

	for missing := range fields {
		t.Run("missing "+missing, func(t *testing.T) {
			body := map[string]any{}
			for k, v := range fields {
				if k != missing {
					body[k] = v
				}
			}
			rr := postJSON(t, r, "/posts", body)
			mustStatus(t, rr.Code, http.StatusBadRequest, rr.Body.String())
			if !strings.Contains(rr.Body.String(), missing) {
				t.Errorf("error body %q does not name the missing field %q", rr.Body.String(), missing)
			}
		})
	}

	// No partial writes: the category registry must not contain the name.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE name = $1", category).Scan(&count); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if count != 0 {
		t.Errorf("category rows written on validation failure: %d", count)
	}
}

func TestAPICreateDuplicateSlug(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	suffix := uuid.NewString()[:8]
	title := "Api Duplicate " + suffix
	slug := "api-duplicate-" + suffix
	category := "api-dup-" + suffix
	cleanPost(t, db, slug, []string{category}, nil)

	body := map[string]any{
		"title": title, "slug": slug, "content": "c", "excerpt": "e", "category": category,
	}

	rr := postJSON(t, r, "/posts", body)
	mustStatus(t, rr.Code, http.StatusCreated, rr.Body.String())

	rr = postJSON(t, r, "/posts", body)
	mustStatus(t, rr.Code, http.StatusConflict, rr.Body.String())

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blogs WHERE slug = $1", slug).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("post count: got %d, want 1", count)
	}
}

func TestAPIGetPostNotFound(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	rr := getJSON(t, r, "/posts/no-such-slug-"+uuid.NewString()[:8])
	mustStatus(t, rr.Code, http.StatusNotFound, rr.Body.String())
}

func TestAPIListCategoriesAndTags(t *testing.T) {
	db := testDB(t)
	r := testRouter(t, db)

	suffix := uuid.NewString()[:8]
	title := "Api Registry " + suffix
	slug := "api-registry-" + suffix
	category := "api-reg-" + suffix
	tags := []string{"api-z-" + suffix, "api-a-" + suffix}
	cleanPost(t, db, slug, []string{category}, tags)

	rr := postJSON(t, r, "/posts", map[string]any{
		"title": title, "slug": slug, "content": "c", "excerpt": "e",
		"category": category, "tags": tags,
	})
	mustStatus(t, rr.Code, http.StatusCreated, rr.Body.String())

	for _, path := range []string{"/categories", "/tags"} {
		rr := getJSON(t, r, path)
		mustStatus(t, rr.Code, http.StatusOK, rr.Body.String())

		var names []string
		if err := json.Unmarshal(rr.Body.Bytes(), &names); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		for i := 1; i < len(names); i++ {
			if names[i-1] > names[i] {
				t.Errorf("%s not sorted: %q > %q", path, names[i-1], names[i])
			}
		}
		seen := map[string]bool{}
		for _, n := range names {
			if seen[n] {
				t.Errorf("%s contains duplicate %q", path, n)
			}
			seen[n] = true
		}
	}
}
