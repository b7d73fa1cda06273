// SPDX-License-Identifier: EPL-2.0

// Package metrics exposes editor activity as Prometheus metrics. Metrics
// implements editor.Observer.
package metrics
