package main

import (
	"fmt"
	"os"
)

// version is set at link time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tilerc:", err)
		os.Exit(1)
	}
}
