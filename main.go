package main

import (
	"os"

	"github.com/GoDocVault/GoDocVault/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
