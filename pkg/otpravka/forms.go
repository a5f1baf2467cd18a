package otpravka

import (
	"context"
	"net/http"
	"net/url"
)

// GenerateDocuments returns a ZIP archive with every document for the batch.
func (c *Client) GenerateDocuments(ctx context.Context, batchID string) ([]byte, error) {
	return c.form(ctx, "GenerateDocuments", batchID, "zip-all", nil)
}

// GenerateF103 returns the F103 batch list. An empty printType means PAPER.
func (c *Client) GenerateF103(ctx context.Context, batchID string, printType PrintType) ([]byte, error) {
	const op = "GenerateF103"
	if printType == "" {
		printType = PrintPaper
	}
	if err := c.checkVar(op, "print type", string(printType), "oneof=PAPER ELECTRONIC"); err != nil {
		return nil, c.reject(err)
	}
	return c.form(ctx, op, batchID, "f103", url.Values{"print-type": {string(printType)}})
}

// GenerateF7P returns the F7p address labels for the batch.
func (c *Client) GenerateF7P(ctx context.Context, batchID string) ([]byte, error) {
	return c.form(ctx, "GenerateF7P", batchID, "f7p", nil)
}

// GenerateF112 returns the F112 cash-on-delivery forms for the batch.
func (c *Client) GenerateF112(ctx context.Context, batchID string) ([]byte, error) {
	return c.form(ctx, "GenerateF112", batchID, "f112", nil)
}

func (c *Client) form(ctx context.Context, op, batchID, kind string, query url.Values) ([]byte, error) {
	if err := c.checkVar(op, "batch id", batchID, "required"); err != nil {
		return nil, c.reject(err)
	}

	var data []byte
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodGet,
		path:   pathf("/1.0/forms/%s/", batchID) + kind,
		query:  query,
		accept: "*/*",
	}, &data)
	if err != nil {
		return nil, err
	}
	return data, nil
}
