package telegram

import "context"

var _ context.Context = (*traceContext)(nil)

// traceContext layers a flat string-keyed map over a parent context so a single
// allocation carries every trace value of an update.
type traceContext struct {
	context.Context
	data map[string]any
}

func contextWithValues(ctx context.Context, data map[string]any) context.Context {
	if len(data) == 0 {
		return ctx
	}
	return &traceContext{
		Context: ctx,
		data:    data,
	}
}

func (c *traceContext) Value(key any) any {
	if strKey, ok := key.(string); ok {
		if v, exist := c.data[strKey]; exist {
			return v
		}
	}
	return c.Context.Value(key)
}
