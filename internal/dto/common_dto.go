package dto

type ErrorResponse struct {
	Error   bool              `json:"error"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status           string `json:"status"`
	Timestamp        string `json:"timestamp"`
	DB               string `json:"db"`
	NotifyQueueDepth int    `json:"notify_queue_depth"`
}

// PageRequest is 1-based; Normalize clamps it into a usable range.
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps Offset well inside int range.
	MaxPage = 1_000_000
)

func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}
