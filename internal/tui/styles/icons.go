package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "✗"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	LoadingIcon string = "⟳"
	SearchIcon  string = "🔍"
	HomeIcon    string = "🏠"
	RetryIcon   string = "🔄"
)
