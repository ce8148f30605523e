package models

// ProbeStatus separates the ways a probe can end.
type ProbeStatus int

const (
	// StatusHit means the probe's hypothesis was confirmed.
	StatusHit ProbeStatus = iota
	// StatusNoMatch means a well-formed response without the signature.
	StatusNoMatch
	// StatusTransportError means no usable response was received.
	StatusTransportError
	// StatusParseError means the response could not be interpreted.
	StatusParseError
)

func (s ProbeStatus) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusNoMatch:
		return "no_match"
	case StatusTransportError:
		return "transport_error"
	case StatusParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// ProbeResult is what a single probe reports back. Callers that only need a
// yes/no answer use OK.
type ProbeResult struct {
	Probe  string
	Status ProbeStatus
	URL    string
	Err    error
	// ExtractErr holds a best-effort extraction failure that did not change Status.
	ExtractErr error
}

// OK reports whether the probe confirmed its hypothesis.
func (r ProbeResult) OK() bool {
	return r.Status == StatusHit
}

// Hit builds a successful result.
func Hit(probe, url string) ProbeResult {
	return ProbeResult{Probe: probe, Status: StatusHit, URL: url}
}

// NoMatch builds a result for a response lacking the signature.
func NoMatch(probe, url string, err error) ProbeResult {
	return ProbeResult{Probe: probe, Status: StatusNoMatch, URL: url, Err: err}
}

// TransportError builds a result for a failed request.
func TransportError(probe, url string, err error) ProbeResult {
	return ProbeResult{Probe: probe, Status: StatusTransportError, URL: url, Err: err}
}

// ParseError builds a result for an uninterpretable response.
func ParseError(probe, url string, err error) ProbeResult {
	return ProbeResult{Probe: probe, Status: StatusParseError, URL: url, Err: err}
}
