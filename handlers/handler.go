// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"bootstrapper-server/storage"
)

// Handler carries the dependencies shared by all endpoint handlers.
type Handler struct {
	Store      *storage.Store
	DailyLimit int
	MonthLimit int
}
