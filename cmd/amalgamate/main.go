package main

import (
	"fmt"
	"os"

	"github.com/MaineK00n/amalgamate/pkg/cmd/root"
)

func main() {
	if err := root.NewCmdRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to exec amalgamate: %s\n", fmt.Sprintf("%+v", err))
		os.Exit(1)
	}
}
