package dto

// CSV delivery destinations, tried in this order.
const (
	DestinationFile      = "file"
	DestinationClipboard = "clipboard"
	DestinationInline    = "inline"
)

// CSVExportResult describes where a generated CSV ended up. Content is only set
// when neither the file nor the clipboard could be written.
type CSVExportResult struct {
	Destination string `json:"destination"`
	Path        string `json:"path,omitempty"`
	Rows        int    `json:"rows"`
	Content     string `json:"content,omitempty"`
}

// PDFExportResult summarises a per-student PDF batch.
type PDFExportResult struct {
	Directory    string   `json:"directory"`
	Files        []string `json:"files"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Failures     []string `json:"failures,omitempty"`
}
