package discovery

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

// fakeSource serves a manifest and/or a listing page through the Fetcher
// interface, recording the locations it was asked for.
type fakeSource struct {
	manifestStatus int
	manifestBody   string
	listingStatus  int
	listingBody    string
	requested      []string
}

func (f *fakeSource) Fetch(_ context.Context, location string) (int, []byte, error) {
	f.requested = append(f.requested, location)
	switch {
	case strings.HasPrefix(location, "./photos.json"):
		if f.manifestStatus == 0 {
			return 0, nil, fmt.Errorf("connection refused")
		}
		return f.manifestStatus, []byte(f.manifestBody), nil
	case location == "./":
		if f.listingStatus == 0 {
			return 0, nil, fmt.Errorf("connection refused")
		}
		return f.listingStatus, []byte(f.listingBody), nil
	}
	return http.StatusNotFound, nil, nil
}

const listingPage = `<html><body>
<a href="a.png">a.png</a>
<a href="b.png">b.png</a>
</body></html>`

// TestResolveManifestPrecedence verifies that a valid manifest wins over
// the directory listing and that its order is kept verbatim.
func TestResolveManifestPrecedence(t *testing.T) {
	src := &fakeSource{
		manifestStatus: http.StatusOK,
		manifestBody:   `["b.png", "a.png"]`,
		listingStatus:  http.StatusOK,
		listingBody:    listingPage,
	}
	r := NewResolver(src, "photos.json")

	got := r.Resolve(context.Background())
	expected := []string{"./b.png", "./a.png"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Resolve() = %v, expected manifest order %v", got, expected)
	}

	// 只应该请求清单，列表页不应被触达
	for _, loc := range src.requested {
		if loc == "./" {
			t.Error("directory listing was fetched even though the manifest succeeded")
		}
	}
}

// TestResolveManifestCacheBypass verifies the ts cache-busting parameter.
func TestResolveManifestCacheBypass(t *testing.T) {
	src := &fakeSource{
		manifestStatus: http.StatusOK,
		manifestBody:   `["a.png"]`,
	}
	r := NewResolver(src, "photos.json")
	r.Resolve(context.Background())

	if len(src.requested) == 0 {
		t.Fatal("no fetch recorded")
	}
	first := src.requested[0]
	if !strings.HasPrefix(first, "./photos.json?ts=") {
		t.Errorf("manifest location = %q, expected ts query parameter", first)
	}
}

// TestResolveFallbackToListing verifies the listing fallback when the
// manifest is missing, invalid, or empty.
func TestResolveFallbackToListing(t *testing.T) {
	tests := []struct {
		name           string
		manifestStatus int
		manifestBody   string
	}{
		{"manifest 404", http.StatusNotFound, "not found"},
		{"manifest unreachable", 0, ""},
		{"manifest invalid JSON", http.StatusOK, "<html>oops</html>"},
		{"manifest empty array", http.StatusOK, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{
				manifestStatus: tt.manifestStatus,
				manifestBody:   tt.manifestBody,
				listingStatus:  http.StatusOK,
				listingBody:    listingPage,
			}
			r := NewResolver(src, "photos.json")

			got := r.Resolve(context.Background())
			expected := []string{"./a.png", "./b.png"}
			if !reflect.DeepEqual(got, expected) {
				t.Errorf("Resolve() = %v, expected listing result %v", got, expected)
			}
		})
	}
}

// TestResolveTotalFailure verifies the empty result when every source is
// unavailable.
func TestResolveTotalFailure(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(src, "photos.json")

	if got := r.Resolve(context.Background()); len(got) != 0 {
		t.Errorf("Resolve() = %v, expected empty result", got)
	}
}

// TestResolveWithoutManifestName verifies that an empty manifest name
// skips straight to the listing strategy.
func TestResolveWithoutManifestName(t *testing.T) {
	src := &fakeSource{
		listingStatus: http.StatusOK,
		listingBody:   listingPage,
	}
	r := NewResolver(src, "")

	got := r.Resolve(context.Background())
	expected := []string{"./a.png", "./b.png"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Resolve() = %v, expected %v", got, expected)
	}
	if len(src.requested) != 1 || src.requested[0] != "./" {
		t.Errorf("requested = %v, expected only the listing page", src.requested)
	}
}
