package main

import (
	"github.com/joho/godotenv"

	"github.com/mshibata/gh-activity/cmd"
)

func main() {
	// A missing .env file is fine; the token can come from the environment.
	_ = godotenv.Load()

	cmd.Execute()
}
