package calculator

// Response is the JSON body of a successful calculation. Input echoes the
// decoded request so the front-end can render both side by side.
type Response[In, Out any] struct {
	Calculator string `json:"calculator"`
	Input      In     `json:"input"`
	Result     Out    `json:"result"`
}

// ReportRequest is the JSON body for POST /api/calculators/{name}/report.
// Title overrides the default report heading.
type ReportRequest[In any] struct {
	Title string `json:"title,omitempty"`
	Input In     `json:"input"`
}
