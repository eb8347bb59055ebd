// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"github.com/google/uuid"
)

// GenerateAPIKey returns a new opaque API key token. Keys are random UUIDs,
// stored as-is so lookups stay an exact match on the unique column.
func GenerateAPIKey() string {
	return uuid.NewString()
}
