package main

import (
	"os"

	"github.com/metinatakli/movie-tracker/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		os.Exit(1)
	}
}
