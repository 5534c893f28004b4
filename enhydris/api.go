// Copyright (C) The openmeteo.org Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package enhydris

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/openmeteo/enhydris-api-client/timeseries"
)

// Login authenticates against the server's login form and returns
// the resulting session credentials. An empty username means
// anonymous access: no request is made and zero Credentials are
// returned. A rejected username/password surfaces as
// *AuthenticationError.
//
// The exchange mirrors what a browser does: a GET obtains the CSRF
// cookie, then the credentials are posted with the CSRF token header
// and the login page as Referer. The redirect the server responds
// with on success is not followed; its cookies are the session.
func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	if username == "" {
		return Credentials{}, nil
	}
	loginURL := URLJoin(c.BaseURL, "accounts/login/")

	resp, buf, err := c.do(ctx, Credentials{}, http.MethodGet, loginURL, nil, nil)
	if err != nil {
		return Credentials{}, err
	}
	if resp.StatusCode >= 400 {
		return Credentials{}, &AuthenticationError{*newRequestError(resp, buf)}
	}
	csrftoken := cookieValue(resp, csrfCookieName)

	form := url.Values{"username": {username}, "password": {password}}
	hdr := http.Header{
		"Content-Type": {"application/x-www-form-urlencoded"},
		"Referer":      {loginURL},
		csrfHeaderName: {csrftoken},
	}
	resp, buf, err = c.noRedirects().do(ctx, Credentials{CSRFToken: csrftoken},
		http.MethodPost, loginURL, hdr, strings.NewReader(form.Encode()))
	if err != nil {
		return Credentials{}, err
	}
	if resp.StatusCode >= 400 {
		return Credentials{}, &AuthenticationError{*newRequestError(resp, buf)}
	}

	creds := Credentials{
		SessionID: cookieValue(resp, sessionCookieName),
		CSRFToken: cookieValue(resp, csrfCookieName),
	}
	if creds.CSRFToken == "" {
		// The server may not rotate the token on login.
		creds.CSRFToken = csrftoken
	}
	return creds, nil
}

// noRedirects returns a copy of c whose underlying http.Client
// reports redirect responses instead of following them.
func (c *Client) noRedirects() *Client {
	hc := *c.httpClient()
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	cc := *c
	cc.Client = &hc
	return &cc
}

func cookieValue(resp *http.Response, name string) string {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name && cookie.Value != "" {
			return cookie.Value
		}
	}
	return ""
}

func newRequestError(resp *http.Response, buf []byte) *RequestError {
	err := newAPIError(resp.Request, resp, buf)
	switch err := err.(type) {
	case *RequestError:
		return err
	case *NotFoundError:
		return &err.RequestError
	case *ValidationError:
		return &err.RequestError
	}
	return nil
}

// GetModel fetches the model resource of the given type and id
// ("api/{model}/{id}/") and decodes the JSON response into output,
// which may be a typed struct such as Station, or a Dict. A missing
// resource surfaces as *NotFoundError.
func (c *Client) GetModel(ctx context.Context, creds Credentials, model string, id int, output interface{}) error {
	resp, buf, err := c.do(ctx, creds, http.MethodGet, c.modelURL(model, id), nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return newAPIError(resp.Request, resp, buf)
	}
	if output == nil {
		return nil
	}
	return json.Unmarshal(buf, output)
}

// PostModel creates a model resource ("api/{model}/") from data,
// which is serialized to JSON, and returns the id the server
// assigned. A rejected payload with field-level errors surfaces as
// *ValidationError.
func (c *Client) PostModel(ctx context.Context, creds Credentials, model string, data interface{}) (int, error) {
	j, err := json.Marshal(data)
	if err != nil {
		return 0, err
	}
	hdr := http.Header{"Content-Type": {"application/json"}}
	resp, buf, err := c.do(ctx, creds, http.MethodPost, c.modelURL(model, 0), hdr, bytes.NewReader(j))
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, newAPIError(resp.Request, resp, buf)
	}
	var created struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(buf, &created); err != nil {
		return 0, fmt.Errorf("decoding response to POST %s: %s", model, err)
	}
	return created.ID, nil
}

// DeleteModel deletes the model resource of the given type and id.
func (c *Client) DeleteModel(ctx context.Context, creds Credentials, model string, id int) error {
	resp, buf, err := c.do(ctx, creds, http.MethodDelete, c.modelURL(model, id), nil, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.Request, resp, buf)
	}
	return nil
}

// ReadTsData retrieves all records of the given time series
// ("api/tsdata/{id}/"). An empty series yields an empty RecordSet,
// not an error.
func (c *Client) ReadTsData(ctx context.Context, creds Credentials, tsID int) (timeseries.RecordSet, error) {
	resp, buf, err := c.do(ctx, creds, http.MethodGet, c.tsdataURL(tsID), nil, nil)
	if err != nil {
		return timeseries.RecordSet{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return timeseries.RecordSet{}, newAPIError(resp.Request, resp, buf)
	}
	return timeseries.Parse(bytes.NewReader(buf))
}

// PostTsData uploads the given records to the time series
// ("api/tsdata/{id}/"). The server appends them to whatever records
// it already has; the client does not deduplicate against remote
// data.
func (c *Client) PostTsData(ctx context.Context, creds Credentials, tsID int, rs timeseries.RecordSet) error {
	var data bytes.Buffer
	if err := rs.Write(&data); err != nil {
		return err
	}
	form := url.Values{"timeseries_records": {data.String()}}
	hdr := http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}
	resp, buf, err := c.do(ctx, creds, http.MethodPost, c.tsdataURL(tsID), hdr, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.Request, resp, buf)
	}
	return nil
}

// GetTsEndDate returns the timestamp of the last record of the given
// time series, fetched from "timeseries/d/{id}/bottom/". For an
// empty series it returns the zero time (0001-01-01 00:00 UTC), so
// "empty" and "ends before X" can be compared uniformly without a
// null case.
func (c *Client) GetTsEndDate(ctx context.Context, creds Credentials, tsID int) (time.Time, error) {
	u := URLJoin(c.BaseURL, "timeseries/d", strconv.Itoa(tsID), "bottom") + "/"
	resp, buf, err := c.do(ctx, creds, http.MethodGet, u, nil, nil)
	if err != nil {
		return time.Time{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return time.Time{}, newAPIError(resp.Request, resp, buf)
	}
	lines := strings.Split(string(buf), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		return timeseries.ParseTimestamp(strings.SplitN(line, ",", 2)[0])
	}
	return time.Time{}, nil
}

func (c *Client) modelURL(model string, id int) string {
	if id == 0 {
		return URLJoin(c.BaseURL, "api", model) + "/"
	}
	return URLJoin(c.BaseURL, "api", model, strconv.Itoa(id)) + "/"
}

func (c *Client) tsdataURL(tsID int) string {
	return URLJoin(c.BaseURL, "api/tsdata", strconv.Itoa(tsID)) + "/"
}
