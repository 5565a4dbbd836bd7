// Package pricing holds the fixed console rental rate tables and the
// lookup used to compute the authoritative booking total. Prices are
// business constants; there is no interpolation and no dynamic pricing.
// A lookup outside the covered controller or duration range returns
// no price, which callers must treat as a validation failure rather
// than a free booking.
package pricing

// rateTable maps controller count (1..4) to duration to price.
// Hourly tables cover durations 1..6, daily tables 1..7.
type rateTable map[int]map[int]int

var hourlyStandard = rateTable{
	1: {1: 150, 2: 280, 3: 400, 4: 500, 5: 600, 6: 700},
	2: {1: 200, 2: 370, 3: 520, 4: 650, 5: 780, 6: 900},
	3: {1: 250, 2: 460, 3: 640, 4: 800, 5: 960, 6: 1100},
	4: {1: 300, 2: 550, 3: 750, 4: 950, 5: 1140, 6: 1300},
}

var hourlyMember = rateTable{
	1: {1: 120, 2: 225, 3: 320, 4: 400, 5: 480, 6: 560},
	2: {1: 160, 2: 295, 3: 415, 4: 520, 5: 620, 6: 720},
	3: {1: 200, 2: 370, 3: 510, 4: 640, 5: 770, 6: 880},
	4: {1: 240, 2: 440, 3: 600, 4: 760, 5: 910, 6: 1040},
}

var dailyStandard = rateTable{
	1: {1: 950, 2: 1490, 3: 1920, 4: 2250, 5: 2480, 6: 2700, 7: 2750},
	2: {1: 1100, 2: 1650, 3: 2090, 4: 2420, 5: 2640, 6: 2860, 7: 2970},
	3: {1: 1370, 2: 1920, 3: 2360, 4: 2690, 5: 2910, 6: 3130, 7: 3300},
	4: {1: 1650, 2: 2300, 3: 2950, 4: 3080, 5: 3300, 6: 3520, 7: 3740},
}

var dailyMember = rateTable{
	1: {1: 849, 2: 1339, 3: 1739, 4: 2049, 5: 2249, 6: 2449, 7: 2499},
	2: {1: 999, 2: 1599, 3: 1899, 4: 2199, 5: 2399, 6: 2599, 7: 2699},
	3: {1: 1269, 2: 1379, 3: 2159, 4: 2549, 5: 2649, 6: 2829, 7: 2999},
	4: {1: 1499, 2: 2099, 3: 2499, 4: 2799, 5: 2999, 6: 3199, 7: 3399},
}

// tableFor selects one of the four tables. Selection depends only on
// the rental period and the membership flag; the console model does
// not affect pricing.
func tableFor(period string, member bool) rateTable {
	if period == "hourly" {
		if member {
			return hourlyMember
		}
		return hourlyStandard
	}
	if member {
		return dailyMember
	}
	return dailyStandard
}

// Price returns the rate for the given selection. The second return
// value is false when the combination is outside table coverage
// (controllers not in 1..4, or duration beyond 6 hours / 7 days).
func Price(controllers, duration int, period string, member bool) (int, bool) {
	row, ok := tableFor(period, member)[controllers]
	if !ok {
		return 0, false
	}
	amount, ok := row[duration]
	if !ok {
		return 0, false
	}
	return amount, true
}
