package otpravka

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// call describes one HTTP exchange with the service.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any    // marshalled as JSON when non-nil
	accept string // overrides the default JSON Accept header
}

// do performs the exchange and decodes the response into out.
// out may be nil (body discarded), *[]byte (raw bytes) or any JSON target.
func (c *Client) do(ctx context.Context, rc call, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "otpravka."+rc.op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", rc.method),
			attribute.String("http.route", rc.path),
		),
	)
	defer span.End()

	log := c.logger.Ctx(ctx)
	start := time.Now()
	status := 0

	defer func() {
		c.metrics.observe(rc.op, status, time.Since(start))
		if err == nil {
			return
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.Operation = rc.op
			c.metrics.observeError(rc.op, apiErr.Kind)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Error("Otpravka API error",
			zap.String("operation", rc.op),
			zap.String("method", rc.method),
			zap.String("path", rc.path),
			zap.Int("status", status),
			zap.Error(err),
		)
	}()

	log.Debug("Calling otpravka API",
		zap.String("operation", rc.op),
		zap.String("method", rc.method),
		zap.String("path", rc.path),
	)

	req, err := c.newRequest(ctx, rc)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(KindTransport, err.Error()).WithCause(err)
	}
	defer resp.Body.Close()

	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindTransport, "failed to read response body").WithStatusCode(status).WithCause(err)
	}

	if status < 200 || status > 299 {
		return translateHTTPError(status, body)
	}

	return decodeInto(body, out)
}

func (c *Client) newRequest(ctx context.Context, rc call) (*http.Request, error) {
	u := c.baseURL + rc.path
	if len(rc.query) > 0 {
		u += "?" + rc.query.Encode()
	}

	var bodyReader io.Reader
	if rc.body != nil {
		payload, err := json.Marshal(rc.body)
		if err != nil {
			return nil, newError(KindUnexpected, "failed to marshal request body").WithCause(err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rc.method, u, bodyReader)
	if err != nil {
		return nil, newError(KindUnexpected, "failed to create request").WithCause(err)
	}

	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	if rc.body != nil {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}
	if rc.accept != "" {
		req.Header.Set("Accept", rc.accept)
	}
	return req, nil
}

func decodeInto(body []byte, out any) error {
	switch dst := out.(type) {
	case nil:
		return nil
	case *[]byte:
		*dst = body
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return newError(KindUnexpected, "failed to decode response").WithCause(err).WithData(body)
	}
	return nil
}

func pathf(format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return fmt.Sprintf(format, escaped...)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// debugDoer logs full request and response dumps through the client logger.
type debugDoer struct {
	base   HTTPDoer
	logger *otelzap.Logger
}

func (d *debugDoer) Do(req *http.Request) (*http.Response, error) {
	log := d.logger.Ctx(req.Context())
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		log.Debug("HTTP request",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.ByteString("request_dump", dump),
		)
	}

	resp, err := d.base.Do(req)
	if err != nil {
		log.Debug("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug("HTTP response",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response_dump", dump),
		)
	}
	return resp, nil
}
