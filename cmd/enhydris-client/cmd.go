// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/openmeteo/enhydris-api-client/lib/cli"
	"github.com/openmeteo/enhydris-api-client/lib/cmd"
)

// handler accepts the shared flags either before or after the
// subcommand name, so "enhydris-client --format yaml get Station 42"
// and "enhydris-client get --format yaml Station 42" both work.
var handler = cmd.WithLateSubcommand(cmd.Multi(map[string]cmd.RunFunc{
	"version":   cmd.PrintVersion,
	"-version":  cmd.PrintVersion,
	"--version": cmd.PrintVersion,

	"get":    cli.Get,
	"create": cli.Create,
	"delete": cli.Delete,

	"tsdata-read": cli.TsdataRead,
	"tsdata-post": cli.TsdataPost,
	"end-date":    cli.EndDate,
}), []string{"format", "f", "log-format"}, []string{"verbose", "v"})

func main() {
	os.Exit(handler(os.Args[0], os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
