// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/openmeteo/enhydris-api-client/enhydris"
	"github.com/openmeteo/enhydris-api-client/lib/cmd"
)

// Get fetches a model resource and prints it.
func Get(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags, values := CommonFlagSet()
	if ok, code := cmd.ParseFlags(flags, prog, args, "model id", stderr); !ok {
		return code
	}
	if flags.NArg() != 2 {
		fmt.Fprintf(stderr, "usage: %s [options] model id\n", prog)
		return 2
	}
	id, err := strconv.Atoi(flags.Args()[1])
	if err != nil {
		return 2
	}

	ctx := context.Background()
	client, creds, err := setup(ctx, values)
	if err != nil {
		return 1
	}

	var obj enhydris.Dict
	err = client.GetModel(ctx, creds, flags.Args()[0], id, &obj)
	if err != nil {
		return 1
	}
	err = writeOutput(stdout, values.Format, obj)
	if err != nil {
		return 1
	}
	return 0
}
