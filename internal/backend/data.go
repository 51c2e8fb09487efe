package backend

import (
	"context"
	"net/http"
)

// GetData calls GET /api/data.
func (h *HTTP) GetData(ctx context.Context) (*Envelope, error) {
	return h.call(ctx, "get_data", Request{Method: http.MethodGet, Path: h.endpoints.Data})
}

// SubmitData calls POST /api/submit with data as the JSON body.
func (h *HTTP) SubmitData(ctx context.Context, data any) (*Envelope, error) {
	return h.call(ctx, "submit_data", Request{Method: http.MethodPost, Path: h.endpoints.Submit, Body: data})
}
