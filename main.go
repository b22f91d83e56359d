package main

import "os"

var (
	version = "dev"
	commit  string
	date    string
)

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
