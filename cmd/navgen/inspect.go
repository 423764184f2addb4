package main

import (
	"fmt"

	"github.com/fatih/structs"
	"github.com/gonavmesh/navmesh"
	"github.com/spf13/cobra"
)

var inspectCfgPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect INPUT.obj",
	Short: "build a navmesh and print build statistics",
	Long: `Build a navigation mesh from input geometry exactly as 'navgen
build' does, then print the resolved settings, per-phase timings, log
messages and pipeline stage sizes for that run.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfigForBuild(inspectCfgPath)
		check(err)

		verts, tris, err := loadOBJGeometry(args[0])
		check(err)

		b := navmesh.NewBuilder(cfg)
		b.KeepDiagnostics = true

		mesh, runID, stats, diag, err := b.Build(verts, tris)
		check(err)

		fmt.Println("run:", runID)
		fmt.Println("settings:")
		printMap(structs.Map(&cfg))

		fmt.Println("phases:")
		for _, p := range stats.Phases {
			fmt.Printf("  %-32s %s\n", p.Label, p.Duration)
		}
		fmt.Println("total:", stats.Total)

		if len(stats.Messages) > 0 {
			fmt.Println("messages:")
			for _, m := range stats.Messages {
				fmt.Println(" ", m)
			}
		}

		fmt.Println("result:")
		fmt.Printf("  %d verts, %d triangles\n", len(mesh.Verts)/3, len(mesh.Tris)/3)

		if diag != nil {
			fmt.Println("diagnostics:")
			fmt.Printf("  solid heightfield  %dx%d\n", diag.Solid.Width, diag.Solid.Height)
			fmt.Printf("  open heightfield   %d spans, %d regions\n", len(diag.Open.Spans), diag.Open.MaxRegions)
			fmt.Printf("  contour set        %d contours\n", len(diag.Contour.Contours))
			fmt.Printf("  poly mesh          %d verts, %d polys\n", len(diag.Poly.Verts), len(diag.Poly.Polys))
			fmt.Printf("  detail mesh        %d verts, %d tris\n", len(diag.Detail.Verts), len(diag.Detail.Tris))
		}
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectCfgPath, "config", "navgen.yml", "build settings")
}

func printMap(m map[string]interface{}) {
	for k, v := range m {
		fmt.Printf("  %-28s %v\n", k, v)
	}
}
