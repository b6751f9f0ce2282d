package main

import "github.com/twiced-technology-gmbh/studytrack/cmd"

func main() {
	cmd.Execute()
}
