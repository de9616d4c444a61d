package main

import (
	"rostergraph/cmd/rostergraph/commands"
	"rostergraph/lib/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}
