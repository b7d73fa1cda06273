// SPDX-License-Identifier: EPL-2.0

// Package config loads audseg settings from an optional YAML file and
// AUDSEG_* environment variables on top of built-in defaults.
//
// Environment variables use the key path in upper case with dots replaced
// by underscores, so analysis.api_key is read from AUDSEG_ANALYSIS_API_KEY.
package config
