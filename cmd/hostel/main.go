package main

import (
	"os"

	"hostel-registry/cmd/hostel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
