package main

import (
	"os"

	"github.com/volunteerhub/volunteerhub/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
