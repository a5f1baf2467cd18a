package otpravka

import (
	"context"
	"net/http"
)

// CreateOrder submits one order to the backlog and returns the record the
// service echoed back.
func (c *Client) CreateOrder(ctx context.Context, order Order) (*Order, error) {
	const op = "CreateOrder"
	if err := c.checkStruct(op, order); err != nil {
		return nil, c.reject(err)
	}
	return sendOne[Order, Order](ctx, c, op, http.MethodPut, "/1.0/user/backlog", order)
}

// ListOrders returns all orders in the backlog.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	err := c.do(ctx, call{op: "ListOrders", method: http.MethodGet, path: "/1.0/backlog"}, &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns a single backlog order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	const op = "GetOrder"
	if err := c.checkVar(op, "order id", orderID, "required"); err != nil {
		return nil, c.reject(err)
	}

	var order Order
	err := c.do(ctx, call{op: op, method: http.MethodGet, path: pathf("/1.0/backlog/%s", orderID)}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrder replaces a backlog order and returns the updated record.
func (c *Client) UpdateOrder(ctx context.Context, orderID string, order Order) (*Order, error) {
	const op = "UpdateOrder"
	if err := c.checkVar(op, "order id", orderID, "required"); err != nil {
		return nil, c.reject(err)
	}
	if err := c.checkStruct(op, order); err != nil {
		return nil, c.reject(err)
	}

	var updated Order
	err := c.do(ctx, call{
		op:     op,
		method: http.MethodPut,
		path:   pathf("/1.0/backlog/%s", orderID),
		body:   order,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOrder removes an order from the backlog.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	const op = "DeleteOrder"
	if err := c.checkVar(op, "order id", orderID, "required"); err != nil {
		return c.reject(err)
	}
	return c.do(ctx, call{op: op, method: http.MethodDelete, path: pathf("/1.0/backlog/%s", orderID)}, nil)
}

// MoveOrderToBacklog returns an order from its batch to the backlog.
func (c *Client) MoveOrderToBacklog(ctx context.Context, orderID string) error {
	const op = "MoveOrderToBacklog"
	if err := c.checkVar(op, "order id", orderID, "required"); err != nil {
		return c.reject(err)
	}
	return c.do(ctx, call{op: op, method: http.MethodPost, path: pathf("/1.0/backlog/%s/to-backlog", orderID)}, nil)
}
