package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/naveend/fapack/internal/browser"
	"github.com/naveend/fapack/internal/download"
	"github.com/naveend/fapack/internal/fontawesome"
	"github.com/naveend/fapack/internal/httpclient"
)

// newFetchCmd creates the 'fetch' command.
func newFetchCmd() *cobra.Command {
	var destDir string
	var workers int
	var static bool
	var pageURL string
	var noDownload bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Locate and download the current desktop release archive",
		Long: `Find the FontAwesome 6 desktop release link on the vendor's
download page and fetch the archive with parallel range requests.

The page renders its links in the browser, so a headless Chrome is
used by default. Use --static for mirrors serving plain HTML.

Examples:
  fapack fetch --dest downloads
  fapack fetch --static --url https://mirror.example.com/fontawesome
  fapack fetch --no-download`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := GetLogger()
			ctx := cmd.Context()

			driver, cleanup, err := newDriver(static)
			if err != nil {
				return err
			}
			defer cleanup()

			url := pageURL
			if url == "" {
				url = fontawesome.DownloadPageURL
			}

			log.Infof("looking for a desktop release on %s", url)
			rel, err := fontawesome.LocateAt(ctx, driver, url)
			if err != nil {
				return err
			}
			log.Info().
				Str("flavor", rel.Flavor).
				Str("version", rel.Version).
				Msg("release located")

			if noDownload {
				fmt.Fprintln(cmd.OutOrStdout(), rel.URL)
				return nil
			}

			if workers > 0 {
				cfg.DownloadWorkers = workers
			}
			dl, err := download.New(cfg)
			if err != nil {
				return err
			}

			dest := filepath.Join(destDir, "fontawesome.zip")
			if err := dl.Fetch(ctx, rel.URL, dest); err != nil {
				return err
			}
			log.Infof("archive saved to %s", dest)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dest", "d", ".", "Directory to save the archive into")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel range workers (default from config)")
	cmd.Flags().BoolVar(&static, "static", false, "Fetch the page over plain HTTP instead of headless Chrome")
	cmd.Flags().StringVar(&pageURL, "url", "", "Download page URL (default the vendor page)")
	cmd.Flags().BoolVar(&noDownload, "no-download", false, "Print the release URL without downloading")
	return cmd
}

// newDriver picks the page-automation backend.
func newDriver(static bool) (fontawesome.Driver, func(), error) {
	if static {
		client, err := httpclient.New(cfg)
		if err != nil {
			return nil, nil, err
		}
		return browser.NewStaticDriver(client), func() {}, nil
	}

	chrome, err := browser.NewChromeDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start headless browser (try --static): %w", err)
	}
	return chrome, chrome.Close, nil
}
