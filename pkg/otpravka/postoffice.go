package otpravka

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

const (
	defaultAddressTop   = 10
	defaultListTop      = 100
	defaultNearbyRadius = 1000
	defaultNearbyFilter = "ALL"
)

// SearchPostOfficesByAddress finds offices serving a free-text address.
func (c *Client) SearchPostOfficesByAddress(ctx context.Context, q PostOfficeAddressQuery) ([]PostOffice, error) {
	const op = "SearchPostOfficesByAddress"
	if err := c.checkStruct(op, q); err != nil {
		return nil, c.reject(err)
	}
	top := q.Top
	if top == 0 {
		top = defaultAddressTop
	}

	var offices []PostOffice
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   "/postoffice/1.0/by-address",
		query: url.Values{
			"address": {q.Address},
			"top":     {itoa(top)},
		},
	}, &offices)
	if err != nil {
		return nil, err
	}
	return offices, nil
}

// SearchPostOfficesByIndex looks up the office with the given postal index.
// The service answers with either one object or an array; the result is
// always a slice.
func (c *Client) SearchPostOfficesByIndex(ctx context.Context, index string) ([]PostOffice, error) {
	const op = "SearchPostOfficesByIndex"
	if err := c.checkVar(op, "index", index, "required,numeric"); err != nil {
		return nil, c.reject(err)
	}

	var raw json.RawMessage
	if err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathf("/postoffice/1.0/%s", index)}, &raw); err != nil {
		return nil, err
	}

	offices, err := decodeList[PostOffice](raw)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Operation = op
		}
		return nil, c.reject(err)
	}
	return offices, nil
}

// SearchPostOfficesByCoordinates finds offices within Radius meters of a point.
func (c *Client) SearchPostOfficesByCoordinates(ctx context.Context, q PostOfficeCoordinatesQuery) ([]PostOffice, error) {
	const op = "SearchPostOfficesByCoordinates"
	if err := c.checkStruct(op, q); err != nil {
		return nil, c.reject(err)
	}
	radius := q.Radius
	if radius == 0 {
		radius = defaultNearbyRadius
	}
	filter := q.Filter
	if filter == "" {
		filter = defaultNearbyFilter
	}

	var offices []PostOffice
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   "/postoffice/1.0/nearby",
		query: url.Values{
			"latitude":  {strconv.FormatFloat(q.Latitude, 'f', -1, 64)},
			"longitude": {strconv.FormatFloat(q.Longitude, 'f', -1, 64)},
			"radius":    {itoa(radius)},
			"filter":    {filter},
		},
	}, &offices)
	if err != nil {
		return nil, err
	}
	return offices, nil
}

// ListPostOffices returns up to top offices without filtering.
// A non-positive top means 100.
func (c *Client) ListPostOffices(ctx context.Context, top int) ([]PostOffice, error) {
	if top <= 0 {
		top = defaultListTop
	}

	var offices []PostOffice
	err := c.do(ctx, call{
		op:     "ListPostOffices",
		method: http.MethodGet,
		path:   "/1.0/postoffice",
		query:  url.Values{"top": {itoa(top)}},
	}, &offices)
	if err != nil {
		return nil, err
	}
	return offices, nil
}
