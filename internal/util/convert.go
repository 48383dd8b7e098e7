// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "strconv"

// IntToString formats i in base 10.
func IntToString(i int) string {
	return strconv.Itoa(i)
}

// Int64ToString formats i in base 10.
func Int64ToString(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FloatToStringPrec formats f with prec decimals ("0.8", "12.70").
func FloatToStringPrec(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// Percent formats a 0..100 value as "42%".
func Percent(v int) string {
	return strconv.Itoa(v) + "%"
}
