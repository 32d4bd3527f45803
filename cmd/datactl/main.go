// Command datactl administers the records datastore: schema migrations and
// manual heartbeat refreshes.
package main

import "github.com/mehtaportfolio/data-backend/cmd/datactl/commands"

func main() {
	commands.Execute()
}
