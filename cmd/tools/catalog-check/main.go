// cmd/tools/catalog-check/main.go

// catalog-check validates a catalog file against the schema and prints
// what it contains. Run it before deploying new data.
package main

import (
	"flag"
	"fmt"
	"os"

	"finhealth-assistant/internal/catalog"
	"finhealth-assistant/internal/common/logger"
)

func main() {
	path := flag.String("file", "", "path to a catalog JSON file (empty checks the embedded fallback)")
	verbose := flag.Bool("v", false, "log load details")
	flag.Parse()

	log := logger.NewNoOpLogger()
	if *verbose {
		log = logger.NewStructured("debug", "console")
	}

	var (
		store *catalog.Store
		err   error
	)
	if *path == "" {
		store, err = catalog.Load("", log)
	} else {
		raw, readErr := os.ReadFile(*path)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", *path, readErr)
			os.Exit(1)
		}
		store, err = catalog.Parse(raw)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog invalid: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("catalog OK: %d cities, %d providers, plans: %v\n",
		store.CityCount(), store.ProviderCount(), store.PlanNames())
}
