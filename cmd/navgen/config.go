package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gonavmesh/navmesh"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config [FILE]",
	Short: "create a build settings file",
	Long: `Create a build settings file in YAML format, prefilled with
default values.

If FILE is not provided, 'navgen.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "navgen.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		if ok, err := confirmIfExists(path, fmt.Sprintf("file %s already exists, overwrite? [y/N]", path)); !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}
		if err := navmesh.WriteConfig(path, navmesh.DefaultConfig()); err != nil {
			check(err)
		}
		fmt.Printf("build settings written to '%s'\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}

// confirmIfExists reports whether the caller should proceed writing to
// path: true if the file doesn't exist yet, or if the user confirms the
// overwrite prompt. Grounded on the teacher's cmd/recast/cmd/cli.go.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return askForConfirmation(msg), nil
}

func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	for {
		input, _ := reader.ReadString('\n')
		if len(input) == 0 {
			return false
		}
		switch input[0] {
		case 'Y', 'y':
			return true
		case 'N', 'n', '\n':
			return false
		}
	}
}

func check(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error, %v\n", err)
		os.Exit(1)
	}
}
