// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds generated sources and buffers shared by tests and
// examples across the module.
package audiotest
