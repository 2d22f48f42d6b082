package main

import (
	"gitlab.com/missiondax-platform/ledger_api/cmd"
)

func main() {
	cmd.Execute()
}
