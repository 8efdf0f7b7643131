package inbound

import "context"

type ToolArgs map[string]interface{}

type ToolResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
	ImagePath    string `json:"image_path,omitempty"`
	VideoPath    string `json:"video_path,omitempty"`
	VideoLocator string `json:"video_locator,omitempty"`
	TraceID      string `json:"trace_id,omitempty"`
}

type ToolDispatcherPort interface {
	Dispatch(ctx context.Context, name string, args ToolArgs) ToolResponse
}
