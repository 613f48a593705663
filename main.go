package main

import "github.com/hrapp/hr-management/cmd"

func main() {
	cmd.Execute()
}
