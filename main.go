package main

import (
	"context"
	"fmt"
	"os"
)

const usage = `usage: faxage-cli <fax|info> <command> [options]

fax send --to=NUMBER --name=RECIPIENT --file=PATH [--file=PATH...] [--tag=NAME] [--callerid=NUMBER] [--debug]
fax list [--starttime] [--filename] [--pagecount] [--tsid]
fax get --id=RECVID --out=PATH [--pdf]
info handlecount|pendcount|qstatus|incomingcalls|busycalls|portstatus
info auditlog [--from=YYYY-MM-DD] [--until=YYYY-MM-DD]

global options: --auth=username:company:password --url=URL --config=PATH --json --verbose
`

func main() {
	if len(os.Args) < 3 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	group := os.Args[1]
	if group != "fax" && group != "info" {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", group)
		os.Exit(1)
	}

	cmd, subcommand, err := ParseArgs(os.Args[2:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cmd, group, subcommand); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *Command, group, subcommand string) error {
	if group == "info" {
		return cmd.Info(ctx, subcommand)
	}

	switch subcommand {
	case "send":
		return cmd.SendFax(ctx)
	case "list":
		return cmd.ListFax(ctx)
	case "get":
		return cmd.GetFax(ctx)
	default:
		return fmt.Errorf("unknown fax subcommand: %s", subcommand)
	}
}
