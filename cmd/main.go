// cmd/main.go
package main

import cmd "github.com/mwiater/cosmoview/cmd/cosmoview"

// main starts the cosmoview CLI by delegating to the cobra root command.
func main() {
	cmd.Execute()
}
