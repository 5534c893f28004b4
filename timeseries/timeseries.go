// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package timeseries implements the tabular record set the Enhydris
// API uses to transfer time series data: chronologically ordered
// (timestamp, value, flags) rows, unique by timestamp, serialized as
// headerless CSV.
package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Record is one row of a time series.
type Record struct {
	Timestamp time.Time

	// Value is NaN for a missing measurement (an empty value
	// field on the wire).
	Value float64

	// Flags is a space-separated list of quality flags, often
	// empty.
	Flags string
}

// A RecordSet is an ordered sequence of records, unique by
// timestamp. The zero value is an empty ready-to-use set.
type RecordSet struct {
	records []Record
}

// Timestamps on the wire have minute resolution; seconds are
// accepted when parsing because some servers emit them.
const timestampFormat = "2006-01-02 15:04"

var timestampFormats = []string{
	timestampFormat,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a timestamp in any of the formats the API is
// known to emit. The result is naive (UTC).
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range timestampFormats {
		if t, err := time.ParseInLocation(format, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// Len returns the number of records.
func (rs *RecordSet) Len() int {
	return len(rs.records)
}

// Records returns the records in chronological order. The returned
// slice is shared with rs and must not be modified.
func (rs *RecordSet) Records() []Record {
	return rs.records
}

// Add inserts r at its chronological position. A record with the
// same timestamp is replaced.
func (rs *RecordSet) Add(r Record) {
	i := sort.Search(len(rs.records), func(i int) bool {
		return !rs.records[i].Timestamp.Before(r.Timestamp)
	})
	if i < len(rs.records) && rs.records[i].Timestamp.Equal(r.Timestamp) {
		rs.records[i] = r
		return
	}
	rs.records = append(rs.records, Record{})
	copy(rs.records[i+1:], rs.records[i:])
	rs.records[i] = r
}

// Merge adds all records of other to rs. Where both sets have a
// record at the same timestamp, the one from other wins.
func (rs *RecordSet) Merge(other *RecordSet) {
	for _, r := range other.records {
		rs.Add(r)
	}
}

// EndDate returns the timestamp of the last record, or the zero time
// for an empty set.
func (rs *RecordSet) EndDate() time.Time {
	if len(rs.records) == 0 {
		return time.Time{}
	}
	return rs.records[len(rs.records)-1].Timestamp
}

// Parse reads the headerless CSV representation. An empty input
// yields an empty RecordSet.
func Parse(r io.Reader) (RecordSet, error) {
	var rs RecordSet
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return rs, nil
		}
		if err != nil {
			return RecordSet{}, err
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 2 {
			return RecordSet{}, fmt.Errorf("line %d: expected at least timestamp and value", lineOf(cr))
		}
		var rec Record
		rec.Timestamp, err = ParseTimestamp(row[0])
		if err != nil {
			return RecordSet{}, fmt.Errorf("line %d: %s", lineOf(cr), err)
		}
		rec.Value, err = parseValue(row[1])
		if err != nil {
			return RecordSet{}, fmt.Errorf("line %d: %s", lineOf(cr), err)
		}
		if len(row) > 2 {
			rec.Flags = strings.TrimSpace(row[2])
		}
		rs.Add(rec)
	}
}

func lineOf(cr *csv.Reader) int {
	line, _ := cr.FieldPos(0)
	return line
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// Write serializes rs in the same headerless CSV form Parse reads:
// minute-resolution timestamp, value (empty for missing), flags.
func (rs *RecordSet) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	for _, r := range rs.records {
		value := ""
		if !math.IsNaN(r.Value) {
			value = strconv.FormatFloat(r.Value, 'f', -1, 64)
		}
		if err := cw.Write([]string{r.Timestamp.Format(timestampFormat), value, r.Flags}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
