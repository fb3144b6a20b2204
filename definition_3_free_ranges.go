package meeting

import "slices"

// freeWindows returns the parts of window not covered by busy, ascending by start.
// Busy ranges may overlap or nest each other and may reach outside window.
func freeWindows(window TimeRange, busy []TimeRange) []TimeRange {
	sorted := slices.Clone(busy)
	slices.SortFunc(sorted, OrderByStart)

	var result []TimeRange

	currentStart := window.start

	for _, busyRange := range sorted {
		if busyRange.IsEmpty() || busyRange.end <= currentStart {
			continue
		}

		if busyRange.start >= window.end {
			break
		}

		if busyRange.start > currentStart {
			result = append(
				result,
				TimeRange{
					start: currentStart,
					end:   busyRange.start,
				},
			)
		}

		currentStart = max(currentStart, busyRange.end)
	}

	if currentStart < window.end {
		result = append(
			result,
			TimeRange{
				start: currentStart,
				end:   window.end,
			},
		)
	}

	return result
}

// windowsClearOf keeps the candidates that overlap none of busy.
// A candidate touched by a busy range is dropped whole, not shrunk.
func windowsClearOf(candidates, busy []TimeRange) []TimeRange {
	var result []TimeRange

	for _, candidate := range candidates {
		if !slices.ContainsFunc(
			busy,
			candidate.Overlaps,
		) {
			result = append(result, candidate)
		}
	}

	return result
}

// atLeast keeps the ranges lasting at least duration minutes.
func atLeast(ranges []TimeRange, duration int) []TimeRange {
	result := make([]TimeRange, 0, len(ranges))

	for _, timeRange := range ranges {
		if timeRange.Duration() >= duration {
			result = append(result, timeRange)
		}
	}

	return result
}
