package main

import (
	"fmt"
	"os"

	"github.com/fleetops/fleet-asset/cmd/cli/assets"
	"github.com/fleetops/fleet-asset/cmd/cli/issues"
	"github.com/fleetops/fleet-asset/cmd/cli/root"
)

func main() {
	rootCmd := root.GetRoot()
	assets.InitAssets(rootCmd)
	issues.InitIssues(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
