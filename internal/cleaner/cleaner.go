// Package cleaner normalizes many free-text values at once by fanning single
// normalization calls out over a bounded worker group.
package cleaner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tournevent/otpravka/pkg/otpravka"
	"golang.org/x/sync/errgroup"
)

// Kind names a normalization variant.
type Kind string

const (
	KindAddress Kind = "address"
	KindFIO     Kind = "fio"
	KindPhone   Kind = "phone"
)

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAddress, KindFIO, KindPhone:
		return k, nil
	}
	return "", fmt.Errorf("unknown normalization kind %q (want address, fio or phone)", s)
}

// Normalizer is the part of *otpravka.Client the cleaner calls.
type Normalizer interface {
	NormalizeAddress(ctx context.Context, req otpravka.NormalizationRequest) (*otpravka.NormalizationResponse, error)
	NormalizeFIO(ctx context.Context, req otpravka.NormalizationRequest) (*otpravka.NormalizationResponse, error)
	NormalizePhone(ctx context.Context, req otpravka.NormalizationRequest) (*otpravka.NormalizationResponse, error)
}

// Result pairs one input with its outcome.
type Result struct {
	ID       string                          `json:"id"`
	Input    string                          `json:"input"`
	Response *otpravka.NormalizationResponse `json:"response,omitempty"`
	Err      error                           `json:"-"`
	Error    string                          `json:"error,omitempty"`
}

// Cleaner runs normalization calls concurrently.
type Cleaner struct {
	n     Normalizer
	limit int
}

// New creates a Cleaner running at most limit calls at a time.
// A non-positive limit means 4.
func New(n Normalizer, limit int) *Cleaner {
	if limit <= 0 {
		limit = 4
	}
	return &Cleaner{n: n, limit: limit}
}

// Clean normalizes every input. Results keep the input order. A failed input
// is reported in its Result and does not stop the others.
func (c *Cleaner) Clean(ctx context.Context, kind Kind, inputs []string) ([]Result, error) {
	call, err := c.variant(kind)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for i, input := range inputs {
		g.Go(func() error {
			req := request(kind, uuid.NewString(), input)
			resp, err := call(ctx, req)
			results[i] = Result{ID: req.ID, Input: input, Response: resp, Err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}

	_ = g.Wait()
	return results, nil
}

// Failed counts results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

type normalizeFunc func(context.Context, otpravka.NormalizationRequest) (*otpravka.NormalizationResponse, error)

func (c *Cleaner) variant(kind Kind) (normalizeFunc, error) {
	switch kind {
	case KindAddress:
		return c.n.NormalizeAddress, nil
	case KindFIO:
		return c.n.NormalizeFIO, nil
	case KindPhone:
		return c.n.NormalizePhone, nil
	}
	_, err := ParseKind(string(kind))
	return nil, err
}

func request(kind Kind, id, text string) otpravka.NormalizationRequest {
	req := otpravka.NormalizationRequest{ID: id}
	switch kind {
	case KindAddress:
		req.OriginalAddress = text
	case KindFIO:
		req.OriginalFIO = text
	case KindPhone:
		req.OriginalPhone = text
	}
	return req
}
