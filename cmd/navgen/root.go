package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd is the base command every subcommand attaches to. Grounded on the
// teacher's cmd/recast/cmd/root.go.
var RootCmd = &cobra.Command{
	Use:   "navgen",
	Short: "build navigation meshes from triangle geometry",
	Long: `navgen turns input geometry in OBJ format into a walkable
navigation mesh: voxelization, region growth, contour tracing, polygon
meshing and detail sampling, all driven by a YAML build settings file.`,
}

// Execute runs the command tree, exiting with status 1 on error.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
