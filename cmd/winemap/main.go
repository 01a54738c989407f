package main

import "winemap/cmd/winemap/cmd"

func main() {
	cmd.Execute()
}
