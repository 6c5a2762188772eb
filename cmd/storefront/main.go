package main

import (
	"fmt"
	"os"
)

func main() {
	root, a := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
