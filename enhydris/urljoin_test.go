// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package enhydris

import (
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&urljoinSuite{})

type urljoinSuite struct{}

func (s *urljoinSuite) TestURLJoin(c *check.C) {
	for _, trial := range []struct {
		segments []string
		expect   string
	}{
		{[]string{}, ""},
		{[]string{"http://x"}, "http://x"},
		{[]string{"http://x", "path/"}, "http://x/path/"},
		{[]string{"http://x/", "path/"}, "http://x/path/"},
		{[]string{"http://x/", "/path/"}, "http://x/path/"},
		{[]string{"http://x", "path"}, "http://x/path"},
		{[]string{"a", "b", "c"}, "a/b/c"},
		{[]string{"a/", "/b/", "/c"}, "a/b/c"},
		{[]string{"http://x", "api/Station/42/"}, "http://x/api/Station/42/"},
	} {
		c.Check(URLJoin(trial.segments...), check.Equals, trial.expect,
			check.Commentf("segments %q", trial.segments))
	}
}

func (s *urljoinSuite) TestURLJoinIdempotent(c *check.C) {
	for _, trial := range [][3]string{
		{"a", "b", "c"},
		{"http://x/", "/api/", "/Station/"},
		{"a/", "b/", "c/"},
	} {
		a, b, seg := trial[0], trial[1], trial[2]
		c.Check(URLJoin(URLJoin(a, b), seg), check.Equals, URLJoin(a, b, seg))
	}
}

func (s *urljoinSuite) TestURLJoinKeepsInnerSlashes(c *check.C) {
	c.Check(URLJoin("http://x//y", "a//b"), check.Equals, "http://x//y/a//b")
}
