package main

import (
	"flag"
	"fmt"
	"os"

	"streakd/internal/di"
	"streakd/internal/structures"

	"github.com/joho/godotenv"
)

func main() {
	// Secrets like the session cookie usually live in a local .env; a
	// missing file is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug mode")
	flag.Parse()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "streakd: %s\n", err)
		os.Exit(1)
	}
}
