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
	"github.com/openmeteo/enhydris-api-client/timeseries"
)

// TsdataRead downloads the records of a time series and writes them
// to stdout as CSV.
func TsdataRead(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return tsdataCommand(prog, args, stderr,
		func(ctx context.Context, client *enhydris.Client, creds enhydris.Credentials, tsID int) error {
			rs, err := client.ReadTsData(ctx, creds, tsID)
			if err != nil {
				return err
			}
			return rs.Write(stdout)
		})
}

// TsdataPost reads CSV records from stdin and appends them to a time
// series.
func TsdataPost(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return tsdataCommand(prog, args, stderr,
		func(ctx context.Context, client *enhydris.Client, creds enhydris.Credentials, tsID int) error {
			rs, err := timeseries.Parse(stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %s", err)
			}
			return client.PostTsData(ctx, creds, tsID, rs)
		})
}

// EndDate prints the timestamp of the last record of a time series,
// or "0001-01-01 00:00" when the series is empty.
func EndDate(prog string, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return tsdataCommand(prog, args, stderr,
		func(ctx context.Context, client *enhydris.Client, creds enhydris.Credentials, tsID int) error {
			end, err := client.GetTsEndDate(ctx, creds, tsID)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, end.Format("2006-01-02 15:04"))
			return nil
		})
}

func tsdataCommand(prog string, args []string, stderr io.Writer, run func(context.Context, *enhydris.Client, enhydris.Credentials, int) error) int {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(stderr, "%s\n", err)
		}
	}()

	flags, values := CommonFlagSet()
	if ok, code := cmd.ParseFlags(flags, prog, args, "timeseries-id", stderr); !ok {
		return code
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s [options] timeseries-id\n", prog)
		return 2
	}
	tsID, err := strconv.Atoi(flags.Args()[0])
	if err != nil {
		return 2
	}

	ctx := context.Background()
	client, creds, err := setup(ctx, values)
	if err != nil {
		return 1
	}

	err = run(ctx, client, creds, tsID)
	if err != nil {
		return 1
	}
	return 0
}
