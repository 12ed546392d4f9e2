package columnar

import (
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/guttosm/offsetcal/internal/calerr"
	"github.com/guttosm/offsetcal/internal/datetime"
)

// StreamContentType is the media type of an Arrow IPC stream.
const StreamContentType = "application/vnd.apache.arrow.stream"

// WriteStream writes arr to w as a one-column Arrow IPC stream.
func WriteStream(w io.Writer, mem memory.Allocator, column string, arr arrow.Array) error {
	schema := arrow.NewSchema([]arrow.Field{{Name: column, Type: arr.DataType(), Nullable: true}}, nil)
	rec := array.NewRecord(schema, []arrow.Array{arr}, int64(arr.Len()))
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		_ = wr.Close()
		return err
	}
	return wr.Close()
}

// ReadTimestampStream reads back the first column of a stream written by
// WriteStream from a timestamp array.
func ReadTimestampStream(r io.Reader, mem memory.Allocator) ([]datetime.DateTime, error) {
	rdr, err := ipc.NewReader(r, ipc.WithAllocator(mem))
	if err != nil {
		return nil, err
	}
	defer rdr.Release()

	var out []datetime.DateTime
	for rdr.Next() {
		rec := rdr.Record()
		if rec.NumCols() == 0 {
			continue
		}
		col, ok := rec.Column(0).(*array.Timestamp)
		if !ok {
			return nil, calerr.Precondition("stream column is %s, not a timestamp", rec.Column(0).DataType())
		}
		values, err := Timestamps(col)
		if err != nil {
			return nil, err
		}
		out = append(out, values...)
	}
	return out, rdr.Err()
}
