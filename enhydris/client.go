// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package enhydris is a client SDK for the Enhydris hydrological
// database web API. It covers session login, generic model CRUD and
// time series data transfer.
package enhydris

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/openmeteo/enhydris-api-client/ctxlog"
)

// A Client addresses one Enhydris server. It holds no session state:
// Credentials obtained from Login are passed explicitly to every
// call, so a single Client may be shared by callers authenticated as
// different users.
type Client struct {
	// HTTP client used to make requests. If nil,
	// DefaultSecureClient or InsecureHTTPClient will be used.
	Client *http.Client

	// Base URL of the Enhydris server, e.g.
	// "https://openmeteo.org". A trailing slash is accepted but
	// not required.
	BaseURL string

	// Accept unverified certificates. This works only if the
	// Client field is nil: otherwise, it has no effect.
	Insecure bool

	// Timeout for requests. NewClientFromEnv returns a Client
	// with a default 5 minute timeout. To disable this timeout
	// and rely on each request's context deadline instead, set
	// Timeout to zero.
	Timeout time.Duration
}

// Credentials is the session state produced by Login. The zero value
// means anonymous access. Calls never modify it, so it is safe to
// share between goroutines.
type Credentials struct {
	// Value of the "sessionid" cookie.
	SessionID string

	// Value of the "csrftoken" cookie, sent back as the
	// X-CSRFToken header on write requests.
	CSRFToken string
}

// Empty reports whether cr carries no session at all.
func (cr Credentials) Empty() bool {
	return cr.SessionID == "" && cr.CSRFToken == ""
}

const (
	sessionCookieName = "sessionid"
	csrfCookieName    = "csrftoken"
	csrfHeaderName    = "X-CSRFToken"
)

// InsecureHTTPClient is the default http.Client used by a Client with
// Insecure==true and Client==nil.
var InsecureHTTPClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true}}}

// DefaultSecureClient is the default http.Client used by a Client otherwise.
var DefaultSecureClient = &http.Client{}

// StringBool tests whether s is suggestive of true. It returns true
// if s is a mixed/upper/lower-case variant of "1", "yes", or "true".
func StringBool(s string) bool {
	s = strings.ToLower(s)
	return s == "1" || s == "yes" || s == "true"
}

// NewClientFromEnv returns a Client configured by the
// ENHYDRIS_BASE_URL and ENHYDRIS_INSECURE environment variables.
func NewClientFromEnv() *Client {
	return &Client{
		BaseURL:  os.Getenv("ENHYDRIS_BASE_URL"),
		Insecure: StringBool(os.Getenv("ENHYDRIS_INSECURE")),
		Timeout:  5 * time.Minute,
	}
}

// LoginFromEnv calls Login with the ENHYDRIS_USERNAME and
// ENHYDRIS_PASSWORD environment variables. With ENHYDRIS_USERNAME
// unset it returns anonymous credentials without contacting the
// server.
func (c *Client) LoginFromEnv(ctx context.Context) (Credentials, error) {
	return c.Login(ctx, os.Getenv("ENHYDRIS_USERNAME"), os.Getenv("ENHYDRIS_PASSWORD"))
}

func (c *Client) httpClient() *http.Client {
	switch {
	case c.Client != nil:
		return c.Client
	case c.Insecure:
		return InsecureHTTPClient
	default:
		return DefaultSecureClient
	}
}

// do performs a single request attempt: it attaches session cookies
// and the CSRF header (for methods that need it), applies c.Timeout,
// and reads the whole response body. The status code is not checked
// here; callers translate non-success responses into the error
// taxonomy in error.go.
func (c *Client) do(ctx context.Context, creds Credentials, method, url string, hdr http.Header, body io.Reader) (*http.Response, []byte, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(c.Timeout))
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nil, err
	}
	for k, v := range hdr {
		req.Header[k] = v
	}
	if creds.SessionID != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: creds.SessionID})
	}
	if creds.CSRFToken != "" {
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: creds.CSRFToken})
		switch method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			if req.Header.Get(csrfHeaderName) == "" {
				req.Header.Set(csrfHeaderName, creds.CSRFToken)
			}
		}
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		ctxlog.FromContext(ctx).WithField("URL", url).WithError(err).Debug(method)
		return nil, nil, newTransportError(req, err)
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, newTransportError(req, err)
	}
	ctxlog.FromContext(ctx).WithFields(map[string]interface{}{
		"URL":    url,
		"Status": resp.Status,
	}).Debug(method)
	return resp, buf, nil
}
