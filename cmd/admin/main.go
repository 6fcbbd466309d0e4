package main

import "github.com/Kapilrajreddy/youtube-api/cmd/admin/commands"

func main() {
	commands.Execute()
}
