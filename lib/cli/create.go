// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/openmeteo/enhydris-api-client/enhydris"
	"github.com/openmeteo/enhydris-api-client/lib/cmd"
)

// Create posts a model resource read as JSON from stdin and prints
// the id the server assigned.
func Create(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags, values := CommonFlagSet()
	if ok, code := cmd.ParseFlags(flags, prog, args, "model", stderr); !ok {
		return code
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s [options] model <data.json\n", prog)
		return 2
	}

	var data enhydris.Dict
	err = json.NewDecoder(stdin).Decode(&data)
	if err != nil {
		err = fmt.Errorf("reading stdin: %s", err)
		return 1
	}

	ctx := context.Background()
	client, creds, err := setup(ctx, values)
	if err != nil {
		return 1
	}

	id, err := client.PostModel(ctx, creds, flags.Args()[0], data)
	if err != nil {
		return 1
	}
	fmt.Fprintln(stdout, id)
	return 0
}
