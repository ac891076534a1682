// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

func clamp(f, minimum, maximum float32) float32 {
	if f < minimum {
		return minimum
	}
	if f > maximum {
		return maximum
	}
	return f
}
