// fapack packages FontAwesome 6 as a LaTeX style.
package main

import (
	"github.com/naveend/fapack/internal/cli"
)

// Version is injected via LDFLAGS for release builds.
var Version = "v1.0.0"

func main() {
	cli.Version = Version
	cli.Execute()
}
