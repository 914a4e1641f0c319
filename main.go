package main

import "github.com/healthassist/healthassist/cmd"

func main() {
	cmd.Execute()
}
