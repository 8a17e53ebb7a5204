package main

import (
	"github.com/jjenkins/boardsite/cmd"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()
	cmd.Execute()
}
