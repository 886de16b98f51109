package main

import "sticky/cmd/client/cmd"

func main() {
	cmd.Execute()
}
