// Package types defines the JSON envelopes every API response uses: payloads
// under "data", failures under "error".
package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire form of a failed request. Reason carries the
// machine-readable lookup detail (e.g. MISSING_PRODUCT) when one applies.
type APIError struct {
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
