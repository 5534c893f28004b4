// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package enhydris

import "context"

// Dict is a helper type so we don't have to write out
// 'map[string]interface{}' every time.
type Dict map[string]interface{}

// Station is an enhydris Station record. Fields not listed here are
// dropped when decoding; use GetModel with a Dict to keep everything.
type Station struct {
	ID              int    `json:"id,omitempty"`
	Name            string `json:"name"`
	Owner           int    `json:"owner,omitempty"`
	Stype           []int  `json:"stype,omitempty"`
	CopyrightHolder string `json:"copyright_holder,omitempty"`
	CopyrightYears  string `json:"copyright_years,omitempty"`
	Remarks         string `json:"remarks,omitempty"`
}

// Timeseries is an enhydris Timeseries record (the metadata, not the
// data; see ReadTsData for the records themselves).
type Timeseries struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name"`
	Gentity           int    `json:"gentity"`
	Variable          int    `json:"variable,omitempty"`
	UnitOfMeasurement int    `json:"unit_of_measurement,omitempty"`
	TimeZone          int    `json:"time_zone,omitempty"`
	Precision         int    `json:"precision,omitempty"`
	Remarks           string `json:"remarks,omitempty"`
}

const (
	modelStation    = "Station"
	modelTimeseries = "Timeseries"
)

// GetStation fetches a Station by id.
func (c *Client) GetStation(ctx context.Context, creds Credentials, id int) (Station, error) {
	var station Station
	err := c.GetModel(ctx, creds, modelStation, id, &station)
	return station, err
}

// PostStation creates a Station and returns its id.
func (c *Client) PostStation(ctx context.Context, creds Credentials, station Station) (int, error) {
	return c.PostModel(ctx, creds, modelStation, station)
}

// GetTimeseries fetches Timeseries metadata by id.
func (c *Client) GetTimeseries(ctx context.Context, creds Credentials, id int) (Timeseries, error) {
	var ts Timeseries
	err := c.GetModel(ctx, creds, modelTimeseries, id, &ts)
	return ts, err
}

// PostTimeseries creates a Timeseries and returns its id.
func (c *Client) PostTimeseries(ctx context.Context, creds Credentials, ts Timeseries) (int, error) {
	return c.PostModel(ctx, creds, modelTimeseries, ts)
}
