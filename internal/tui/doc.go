// SPDX-License-Identifier: EPL-2.0

// Package tui is the interactive terminal front end of the segment editor.
package tui
