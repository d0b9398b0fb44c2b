package main

import (
	"os"

	"github.com/steipete/memegrep/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
