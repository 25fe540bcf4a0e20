package main

import (
	"github.com/joho/godotenv"

	"github.com/biostackaryan/helixmind/cmd"
)

func main() {
	godotenv.Load() // make .env API keys visible before any command runs

	cmd.Execute() // initialize cobra commands
}
