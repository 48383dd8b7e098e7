// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the console packages.
//
//   - AtomicWriteFile: temp-file-and-rename writes for config and exports
//   - TruncateWidth, PadRight, StringWidth: cell-width aware text fitting
//     for panels and suggestion chips (CJK and emoji take two cells)
//   - IntToString and friends: number formatting without fmt
package util
