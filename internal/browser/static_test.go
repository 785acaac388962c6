package browser

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
)

const downloadPage = `<!DOCTYPE html>
<html><body>
<a href="/plans" class="button">Plans</a>
<a href="https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-desktop.zip" class="button text-capitalize">Free for desktop</a>
<a href="https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-web.zip" class="button">Free for web</a>
<a class="button">no href</a>
</body></html>`

func newPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(downloadPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStaticDriverAttributes(t *testing.T) {
	srv := newPageServer(t)
	d := NewStaticDriver(nil)
	ctx := context.Background()

	if err := d.Navigate(ctx, srv.URL); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := d.WaitVisible(ctx, "a.button"); err != nil {
		t.Fatalf("WaitVisible: %v", err)
	}

	hrefs, err := d.Attributes(ctx, "a.button", "href")
	if err != nil {
		t.Fatalf("Attributes: %v", err)
	}
	if len(hrefs) != 3 {
		t.Fatalf("got %d hrefs, want 3 (element without href skipped): %v", len(hrefs), hrefs)
	}
	if hrefs[1] != "https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-desktop.zip" {
		t.Errorf("unexpected second href: %s", hrefs[1])
	}
}

func TestStaticDriverWaitVisibleNoMatch(t *testing.T) {
	srv := newPageServer(t)
	d := NewStaticDriver(nil)
	ctx := context.Background()

	if err := d.Navigate(ctx, srv.URL); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if err := d.WaitVisible(ctx, "table.releases"); err == nil {
		t.Error("expected error for selector with no matches")
	}
}

func TestStaticDriverRequiresNavigate(t *testing.T) {
	d := NewStaticDriver(nil)
	if _, err := d.Attributes(context.Background(), "a", "href"); err == nil {
		t.Error("expected error before Navigate")
	}
}

func TestStaticDriverNon200(t *testing.T) {
	srv := httptest.NewServer(nethttp.NotFoundHandler())
	defer srv.Close()

	d := NewStaticDriver(nil)
	if err := d.Navigate(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 page")
	}
}
