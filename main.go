package main

import "github.com/vanschouwen/streakline/cmd"

func main() {
	cmd.Execute()
}
