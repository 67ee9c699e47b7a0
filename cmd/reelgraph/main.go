package main

import (
	"os"

	"github.com/reelgraph/reelgraph/catalogservice"
)

func main() {
	if err := catalogservice.Run(); err != nil {
		os.Exit(1)
	}
}
