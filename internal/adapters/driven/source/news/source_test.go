package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/finsim/internal/core/domain"
)

type fakeSite struct {
	mu         sync.Mutex
	hits       map[string]int
	userAgents []string
}

func newFakeSite(t *testing.T) (*fakeSite, *httptest.Server) {
	t.Helper()
	site := &fakeSite{hits: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("/markets/", func(w http.ResponseWriter, r *http.Request) {
		site.record(r)
		fmt.Fprint(w, `<ul>
<li class="js-stream-content"><h3>Cat stocks soar</h3><a href="/a/cats">a</a></li>
<li class="js-stream-content"><h3>Dog bonds slip</h3><a href="/a/dogs">b</a></li>
<li class="js-stream-content"><h3>Broken</h3><a href="/a/broken">c</a></li>
</ul>`)
	})
	mux.HandleFunc("/economy/", func(w http.ResponseWriter, r *http.Request) {
		site.record(r)
		fmt.Fprint(w, `<ul><li class="js-stream-content"><h3>Cat stocks soar</h3><a href="/a/cats">a</a></li></ul>`)
	})
	mux.HandleFunc("/down/", func(w http.ResponseWriter, r *http.Request) {
		site.record(r)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/a/cats", func(w http.ResponseWriter, r *http.Request) {
		site.record(r)
		fmt.Fprint(w, `<p>Cat Stocks</p><p>soared today</p>`)
	})
	mux.HandleFunc("/a/dogs", func(w http.ResponseWriter, r *http.Request) {
		site.record(r)
		fmt.Fprint(w, `<p>Dog bonds slipped</p>`)
	})
	mux.HandleFunc("/a/broken", func(w http.ResponseWriter, r *http.Request) {
		site.record(r)
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return site, srv
}

func (f *fakeSite) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[r.URL.Path]++
	f.userAgents = append(f.userAgents, r.UserAgent())
}

func TestSource_Load(t *testing.T) {
	site, srv := newFakeSite(t)

	src := New(Config{
		ListingURLs:       []string{srv.URL + "/markets/", srv.URL + "/down/", srv.URL + "/economy/"},
		RequestsPerSecond: 1000,
		UserAgent:         "finsim-test",
		Client:            srv.Client(),
	})

	docs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, 0, docs[0].ID)
	assert.Equal(t, "Cat stocks soar", docs[0].Title)
	assert.Equal(t, srv.URL+"/a/cats", docs[0].URI)
	assert.Equal(t, "cat stocks.soared today", docs[0].Text)
	assert.Equal(t, "dog bonds slipped", docs[1].Text)

	assert.Equal(t, 1, site.hits["/a/cats"], "duplicate links are fetched once")
	for _, ua := range site.userAgents {
		assert.Equal(t, "finsim-test", ua)
	}
}

func TestSource_AllListingsFail(t *testing.T) {
	_, srv := newFakeSite(t)

	src := New(Config{
		ListingURLs:       []string{srv.URL + "/down/"},
		RequestsPerSecond: 1000,
		Client:            srv.Client(),
	})

	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestSource_ArticlesPerPage(t *testing.T) {
	_, srv := newFakeSite(t)

	src := New(Config{
		ListingURLs:       []string{srv.URL + "/markets/"},
		ArticlesPerPage:   1,
		RequestsPerSecond: 1000,
		Client:            srv.Client(),
	})

	docs, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Cat stocks soar", docs[0].Title)
}

func TestSource_Cancelled(t *testing.T) {
	_, srv := newFakeSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := New(Config{ListingURLs: []string{srv.URL + "/markets/"}, Client: srv.Client()})

	_, err := src.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Defaults(t *testing.T) {
	src := New(Config{})

	assert.Equal(t, domain.CollectionKindNews, src.Kind())
	assert.Equal(t, DefaultListingURLs, src.cfg.ListingURLs)
	assert.Equal(t, DefaultArticlesPerPage, src.cfg.ArticlesPerPage)
	assert.Contains(t, src.Origin(), "https://finance.yahoo.com/")
}
