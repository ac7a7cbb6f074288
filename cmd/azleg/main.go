package main

import (
	"azlegapi/cmd/azleg/commands"
	"azlegapi/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext()
	defer cancel()
	commands.ExecuteContext(ctx)
}
