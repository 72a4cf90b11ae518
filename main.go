package main

import (
	"fmt"
	"os"
	"strings"
)

var version = "devel"

func main() {
	cli, command := parseArgs(os.Args[1:])

	switch {
	case command == "version":
		fmt.Println("famicore", version)
	case strings.HasPrefix(command, "play"):
		checkf(runPlay(cli.Play), "play failed")
	}
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s: %s\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
