package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gonavmesh/navmesh"
	"github.com/spf13/cobra"
)

var buildCfgPath string

var buildCmd = &cobra.Command{
	Use:   "build INPUT.obj",
	Short: "build a navigation mesh from input geometry",
	Long: `Build a navigation mesh from input geometry in OBJ. The build
process is controlled by the settings in --config, defaulting to
'navgen.yml' if present, otherwise the library defaults.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfigForBuild(buildCfgPath)
		check(err)

		verts, tris, err := loadOBJGeometry(args[0])
		check(err)

		b := navmesh.NewBuilder(cfg)
		mesh, runID, stats, _, err := b.Build(verts, tris)
		check(err)

		fmt.Printf("run %s: %d verts, %d triangles, built in %s\n",
			runID, len(mesh.Verts)/3, len(mesh.Tris)/3, stats.Total.Round(time.Microsecond))
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildCfgPath, "config", "navgen.yml", "build settings")
}

// loadConfigForBuild reads path if it exists, falling back to the library
// defaults so build/inspect work against a bare OBJ with no settings file.
func loadConfigForBuild(path string) (navmesh.Config, error) {
	if _, err := os.Stat(path); err != nil {
		return navmesh.DefaultConfig(), nil
	}
	return navmesh.LoadConfig(path)
}
