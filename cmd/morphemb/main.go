package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"morphemb/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
