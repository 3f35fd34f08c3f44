// Command errcorpus builds SQLite databases of compiler diagnostics from a
// srcML corpus.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/errcorpus/internal/adapters/driving/cli"
	"github.com/custodia-labs/errcorpus/internal/logger"
)

func main() {
	// A missing .env is normal; settings then come from the config file.
	_ = godotenv.Load()

	err := cli.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
