package dto

type CreateSlideshowRequest struct {
	ImagePrompt string `json:"image_prompt" binding:"required"`
	Narration   string `json:"narration" binding:"required"`
	Publish     bool   `json:"publish"`
}

type StageOutcomeResponse struct {
	Stage     string `json:"stage"`
	Success   bool   `json:"success"`
	LocalPath string `json:"local_path,omitempty"`
	Locator   string `json:"locator,omitempty"`
	TraceID   string `json:"trace_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type CreateSlideshowResponse struct {
	RunID  string                 `json:"run_id"`
	State  string                 `json:"state"`
	Error  string                 `json:"error,omitempty"`
	Stages []StageOutcomeResponse `json:"stages"`
}
