package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (H001-H099)
	// ============================================

	"H001": {
		Category: CategoryDriver,
		Message:  "Invalid driver",
		DocURL:   "https://hyper.vango.dev/docs/errors/H001",
	},
	"H002": {
		Category: CategoryExpression,
		Message:  "Invalid expression",
		DocURL:   "https://hyper.vango.dev/docs/errors/H002",
	},
	"H003": {
		Category: CategoryRoot,
		Message:  "Invalid render root",
		DocURL:   "https://hyper.vango.dev/docs/errors/H003",
	},
	"H004": {
		Category: CategoryTag,
		Message:  "Malformed tag token",
		DocURL:   "https://hyper.vango.dev/docs/errors/H004",
	},
	"H005": {
		Category: CategoryProps,
		Message:  "Multiple ids provided",
		DocURL:   "https://hyper.vango.dev/docs/errors/H005",
	},
	"H006": {
		Category: CategoryProps,
		Message:  "Invalid attribute name",
		DocURL:   "https://hyper.vango.dev/docs/errors/H006",
	},
	"H007": {
		Category: CategoryProps,
		Message:  "Unsupported listener",
		DocURL:   "https://hyper.vango.dev/docs/errors/H007",
	},

	// ============================================
	// Config Errors (H100-H119)
	// ============================================

	"H100": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	"H101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},
	"H102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
	},

	// ============================================
	// IO Errors (H200-H299)
	// ============================================

	"H200": {
		Category: CategoryIO,
		Message:  "Unsupported expression format",
	},
	"H201": {
		Category: CategoryIO,
		Message:  "Failed to decode expression",
	},
	"H202": {
		Category: CategoryIO,
		Message:  "Failed to encode expression",
	},
	"H210": {
		Category: CategoryIO,
		Message:  "Publish failed",
	},

	// ============================================
	// Live Errors (H300-H399)
	// ============================================

	"H300": {
		Category: CategoryLive,
		Message:  "Invalid live event",
	},
	"H301": {
		Category: CategoryLive,
		Message:  "Unknown event target",
	},
}

// GetAllCodes returns every registered code in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for a code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
