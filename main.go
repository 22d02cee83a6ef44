package main

import "smr-checker/cmd"

func main() {
	cmd.Execute()
}
