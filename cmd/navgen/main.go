// Command navgen builds navigation meshes from triangle geometry. Grounded
// on the teacher's cmd/recast command-line tool.
package main

func main() {
	Execute()
}
