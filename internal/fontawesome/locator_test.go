package fontawesome

import (
	"context"
	"errors"
	"testing"
)

// fakeDriver replays canned attribute lists.
type fakeDriver struct {
	hrefs       []string
	navigateErr error
	visited     string
}

func (f *fakeDriver) Navigate(_ context.Context, url string) error {
	f.visited = url
	return f.navigateErr
}

func (f *fakeDriver) WaitVisible(context.Context, string) error { return nil }

func (f *fakeDriver) Attributes(context.Context, string, string) ([]string, error) {
	return f.hrefs, nil
}

func TestParse(t *testing.T) {
	tests := []struct {
		href    string
		flavor  string
		version string
		ok      bool
	}{
		{"https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-desktop.zip", "free", "6.7.2", true},
		{"https://use.fontawesome.com/releases/v6.7.2/fontawesome-pro-6.7.2-desktop.zip", "pro", "6.7.2", true},
		{"fontawesome-free-6.7.2-desktop.zip", "free", "6.7.2", true},
		{"https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-web.zip", "", "", false},
		{"https://fontawesome.com/plans", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		rel, ok := Parse(tt.href)
		if ok != tt.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tt.href, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if rel.Flavor != tt.flavor || rel.Version != tt.version || rel.URL != tt.href {
			t.Errorf("Parse(%q) = %+v", tt.href, rel)
		}
	}
}

func TestLocatePicksFirstMatchingLink(t *testing.T) {
	d := &fakeDriver{hrefs: []string{
		"https://fontawesome.com/plans",
		"https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-web.zip",
		"https://use.fontawesome.com/releases/v6.7.2/fontawesome-free-6.7.2-desktop.zip",
		"https://use.fontawesome.com/releases/v6.7.2/fontawesome-pro-6.7.2-desktop.zip",
	}}

	rel, err := Locate(context.Background(), d)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if rel.Flavor != "free" || rel.Version != "6.7.2" {
		t.Errorf("located %+v, want free 6.7.2", rel)
	}
	if d.visited != DownloadPageURL {
		t.Errorf("visited %s, want %s", d.visited, DownloadPageURL)
	}
}

func TestLocateNoMatch(t *testing.T) {
	d := &fakeDriver{hrefs: []string{"https://fontawesome.com/plans"}}
	if _, err := Locate(context.Background(), d); !errors.Is(err, ErrNoRelease) {
		t.Errorf("err = %v, want ErrNoRelease", err)
	}
}

func TestLocateNavigateFailure(t *testing.T) {
	d := &fakeDriver{navigateErr: errors.New("net::ERR_NAME_NOT_RESOLVED")}
	if _, err := Locate(context.Background(), d); err == nil {
		t.Error("expected navigation error")
	}
}
