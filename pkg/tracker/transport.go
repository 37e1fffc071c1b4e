package tracker

import "net/http"

// Transport is an http.RoundTripper that feeds every exchange through
// a Tracker. It observes without altering: requests and responses
// pass through the base transport untouched, and recording problems
// never fail the request itself.
type Transport struct {
	// Base performs the actual round trip. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	// Tracker receives the observed outcomes.
	Tracker *Tracker
}

// RoundTrip implements http.RoundTripper.
func (tr *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := tr.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if tr.Tracker == nil {
		return resp, err
	}

	if err != nil {
		// Transport-level failure: no HTTP response to count.
		tr.Tracker.RecordError(CallError{Err: err})
		return resp, err
	}

	observed := Response{
		Config: CallConfig{
			Method: req.Method,
			URL:    req.URL.String(),
		},
		Status: resp.StatusCode,
	}
	if _, recordErr := tr.Tracker.RecordResponse(observed); recordErr != nil {
		tr.Tracker.logger.Warn("recording observed call failed", "err", recordErr)
	}
	return resp, nil
}

// NewClient returns an *http.Client whose transport records every
// exchange with the tracker. A nil base clones http.DefaultClient
// semantics.
func NewClient(t *Tracker, base *http.Client) *http.Client {
	client := &http.Client{}
	var baseTransport http.RoundTripper
	if base != nil {
		*client = *base
		baseTransport = base.Transport
	}
	client.Transport = &Transport{Base: baseTransport, Tracker: t}
	return client
}
