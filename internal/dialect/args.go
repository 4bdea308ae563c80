package dialect

import (
	"github.com/lib/pq"

	"github.com/quarrydb/quarry/internal/value"
)

// BindArgs converts compiled statement params into the []any a database/sql
// driver expects. For Postgres, Array params become pq.Array wrappers so the
// driver serializes them as a single array argument for = ANY($n). For
// SQLite, arrays were already expanded into scalar params at compile time, so
// any Array reaching here converts element-wise (the driver will reject it,
// which is the correct failure for a misused API).
func BindArgs(d Dialect, params []value.Value) []any {
	args := make([]any, len(params))
	for i, p := range params {
		if arr, ok := p.(value.Array); ok && d.Name() == "postgres" {
			args[i] = pq.Array(value.Driver(arr))
			continue
		}
		args[i] = value.Driver(p)
	}
	return args
}
