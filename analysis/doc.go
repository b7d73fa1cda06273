// SPDX-License-Identifier: EPL-2.0

// Package analysis is the HTTP client for the sentiment analysis gateway.
//
// The gateway accepts either an encoded audio clip or plain text and answers
// with a Verdict. Audio is sent as base64 inside a JSON body:
//
//	POST {endpoint}/v1/analyze/audio  {"mime_type": "audio/wav", "audio": "UklGR..."}
//	POST {endpoint}/v1/analyze/text   {"text": "..."}
//
// Server errors and transport failures are retried with a linear backoff;
// client errors (4xx) are returned at once as *StatusError.
package analysis
