package main

import "github.com/KaramelBytes/studentdash/cmd"

func main() {
	cmd.Execute()
}
