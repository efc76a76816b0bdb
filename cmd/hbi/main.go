// hbi is the command line companion of the analysis platform: offline risk
// scoring and bidding advice, plus driving a running API server.
package main

import (
	"os"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Execute())
}
