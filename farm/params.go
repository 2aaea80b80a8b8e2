// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farm

// Constants of the reward model and record layout.
const (
	SecondsPerDay = uint64(24 * 3600)

	// DaysPerYearPercent is 365.25 days multiplied by 100 to fold the percent divisor in.
	DaysPerYearPercent = uint64(36525)

	// RewardPrecision is the fixed-point scale used while prorating the APY.
	RewardPrecision = uint64(1e12)

	// MaxAPY bounds the percent stored in a single byte.
	MaxAPY = 255

	// MaxPoolIndex is the highest pool index of a token.
	MaxPoolIndex = 255
)
