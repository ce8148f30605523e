package models

// LoginState is the outcome of probing the backend login page.
type LoginState int

const (
	LoginUnknown LoginState = iota
	LoginFound
	LoginForbidden
	LoginNotFound
)

// String returns the human-readable label used in reports
func (s LoginState) String() string {
	switch s {
	case LoginFound:
		return "Found"
	case LoginForbidden:
		return "Forbidden (IP Address Restriction)"
	case LoginNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}

// Target is the scan record for one host. Probes receive it by pointer and
// mutate it in place; it is never shared between goroutines.
type Target struct {
	// OriginalName is the input as the user supplied it.
	OriginalName string `json:"original_name"`
	// Name is scheme+host, optionally followed by the install path once discovered.
	Name               string            `json:"name"`
	Detected           bool              `json:"detected"`
	InstallPath        string            `json:"install_path,omitempty"`
	InterestingHeaders map[string]string `json:"interesting_headers,omitempty"`
	LoginState         LoginState        `json:"login_state"`
	LoginStatus        string            `json:"login_status,omitempty"`

	installPathSet bool
}

// NewTarget creates a record for an already normalized name.
func NewTarget(original, name string) *Target {
	return &Target{
		OriginalName:       original,
		Name:               name,
		InterestingHeaders: make(map[string]string),
	}
}

// MarkDetected flips Detected to true. There is no way back.
func (t *Target) MarkDetected() {
	t.Detected = true
}

// AddInterestingHeaders merges headers into the record without dropping earlier ones.
func (t *Target) AddInterestingHeaders(headers map[string]string) {
	if t.InterestingHeaders == nil {
		t.InterestingHeaders = make(map[string]string, len(headers))
	}
	for key, value := range headers {
		t.InterestingHeaders[key] = value
	}
}

// HasInstallPath reports whether an install path was recorded.
func (t *Target) HasInstallPath() bool {
	return t.installPathSet
}

// SetInstallPath records the install path and the rewritten name together.
// It returns false, changing nothing, if an install path was already recorded.
func (t *Target) SetInstallPath(name, installPath string) bool {
	if t.installPathSet {
		return false
	}
	t.Name = name
	t.InstallPath = installPath
	t.installPathSet = true
	return true
}

// HasLoginStatus reports whether the login probe already decided.
func (t *Target) HasLoginStatus() bool {
	return t.LoginState != LoginUnknown
}

// SetLoginStatus stores the login outcome once; later calls are ignored.
func (t *Target) SetLoginStatus(state LoginState, status string) bool {
	if t.HasLoginStatus() || state == LoginUnknown {
		return false
	}
	t.LoginState = state
	t.LoginStatus = status
	return true
}
