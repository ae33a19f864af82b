package main

import "github.com/KaramelBytes/datavision-cli/cmd"

func main() {
	cmd.Execute()
}
