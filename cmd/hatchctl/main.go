// Command hatchctl is the seller's field client: it shows the hatchery slot
// board, uploads progress images and reads purchases and notifications.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/osse101/HatcheryOps_Go/internal/client"
)

// exitInterrupted mirrors a shell's status for Ctrl-C
const exitInterrupted = 130

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errInterrupted) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, "Error:", client.Message(err))
		os.Exit(1)
	}
}
