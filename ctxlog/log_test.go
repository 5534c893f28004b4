// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package ctxlog

import (
	"bytes"
	"context"
	"testing"

	check "gopkg.in/check.v1"
)

// Gocheck boilerplate
func Test(t *testing.T) {
	check.TestingT(t)
}

var _ = check.Suite(&logSuite{})

type logSuite struct{}

func (s *logSuite) TestContext(c *check.C) {
	logger := FromContext(nil).WithField("origin", "test")
	ctx := Context(context.Background(), logger)
	c.Check(FromContext(ctx), check.Equals, logger)
}

func (s *logSuite) TestSetFormat(c *check.C) {
	var buf bytes.Buffer
	logger := FromContext(nil)
	origOut := logger.Logger.Out
	origFormatter := logger.Logger.Formatter
	logger.Logger.SetOutput(&buf)
	defer func() {
		logger.Logger.SetOutput(origOut)
		logger.Logger.Formatter = origFormatter
	}()

	SetFormat("json")
	logger.Info("hello")
	c.Check(buf.String(), check.Matches, `(?ms).*"msg":"hello".*`)

	buf.Reset()
	SetFormat("text")
	logger.Info("hello")
	c.Check(buf.String(), check.Matches, `(?ms).*level=info msg=hello.*`)
}
