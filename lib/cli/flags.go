// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"flag"

	"github.com/openmeteo/enhydris-api-client/lib/cmd"
	"rsc.io/getopt"
)

type CommonFlagValues struct {
	Format    string
	LogFormat string
	Verbose   bool
}

// CommonFlagSet returns the flag set shared by all subcommands.
func CommonFlagSet() (cmd.FlagSet, *CommonFlagValues) {
	values := &CommonFlagValues{Format: "json", LogFormat: "text"}
	flags := getopt.NewFlagSet("", flag.ContinueOnError)
	flags.StringVar(&values.Format, "format", values.Format, "Output format: json or yaml")
	flags.Alias("f", "format")
	flags.StringVar(&values.LogFormat, "log-format", values.LogFormat, "Log format: text or json")
	flags.BoolVar(&values.Verbose, "verbose", false, "Print debug/progress messages on stderr")
	flags.Alias("v", "verbose")
	return flags, values
}
