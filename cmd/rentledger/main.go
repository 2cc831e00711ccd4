// Command rentledger manages a landlord's properties, tenants, rent and
// expenses in a local key-value store.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"rentledger/internal/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.Execute(cli.Options{}, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
