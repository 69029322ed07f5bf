// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import "fmt"

// Build information, stamped via -ldflags at release time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the full version line printed by -version.
func String() string {
	return fmt.Sprintf("fieldtrace %s (commit %s, built %s)", Version, Commit, Date)
}
