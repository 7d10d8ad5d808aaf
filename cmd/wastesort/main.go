// wastesort is the garbage sorting assistant CLI: classify text, look up
// catalog items, analyze images and serve the web UI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
