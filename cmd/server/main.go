// Command server runs the plant care HTTP API.
//
// Configuration is read from the environment (and an optional config file,
// see internal/config). Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"

	"github.com/mkotas/plantarium-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("run: %v", err)
	}
}
