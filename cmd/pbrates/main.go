package main

import (
	"os"

	"github.com/robotomize/pbrates/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		logging.DefaultLogger().Fatal(err)
	}
}
