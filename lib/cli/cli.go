// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the subcommands of enhydris-client. Server
// address and credentials come from the ENHYDRIS_* environment
// variables; with ENHYDRIS_USERNAME unset, requests are anonymous.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ghodss/yaml"
	"github.com/openmeteo/enhydris-api-client/ctxlog"
	"github.com/openmeteo/enhydris-api-client/enhydris"
)

// setup applies common flag values and logs in with the environment
// credentials.
func setup(ctx context.Context, values *CommonFlagValues) (*enhydris.Client, enhydris.Credentials, error) {
	ctxlog.SetFormat(values.LogFormat)
	if values.Verbose {
		ctxlog.SetLevel("debug")
	}
	client := enhydris.NewClientFromEnv()
	if client.BaseURL == "" {
		return nil, enhydris.Credentials{}, fmt.Errorf("ENHYDRIS_BASE_URL environment variable is not set")
	}
	creds, err := client.LoginFromEnv(ctx)
	if err != nil {
		return nil, enhydris.Credentials{}, err
	}
	return client, creds, nil
}

func writeOutput(stdout io.Writer, format string, obj interface{}) error {
	switch format {
	case "yaml":
		buf, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = stdout.Write(buf)
		return err
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(obj)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
