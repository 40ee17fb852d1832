package main

import (
	"fmt"
	"os"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app"
	"github.com/shalean-cleaning/shalean-cleaning-services/internal/app/config"
)

func main() {
	cfg := config.MustLoad()

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "booking service: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "booking service: %v\n", err)
		os.Exit(1)
	}
}
