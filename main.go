package main

import "github.com/bcits/ticketdesk/cmd"

func main() {
	cmd.Execute()
}
