// Package database adapts the remote spreadsheet service as a range
// store: ordered rows of strings addressed by "Sheet Name!A:H" range
// specs, with a short-TTL read cache layered on top.
package database

import "context"

// RangeStore is the storage contract consumed by the repositories.
// Connect must be called once before any other operation.
type RangeStore interface {
	Connect(ctx context.Context) error
	GetRange(ctx context.Context, rangeSpec string) ([][]string, error)
	SetRange(ctx context.Context, rangeSpec string, values [][]string) error
	AppendRange(ctx context.Context, rangeSpec string, values [][]string) error
}

// SheetLabel extracts the sheet name from a range spec, e.g.
// "Timesheet!A2:H2" -> "Timesheet". A spec without a "!" is already a
// bare sheet name.
func SheetLabel(rangeSpec string) string {
	for i := 0; i < len(rangeSpec); i++ {
		if rangeSpec[i] == '!' {
			return rangeSpec[:i]
		}
	}
	return rangeSpec
}
