package render

import (
	"encoding/json"
	"io"

	"quotesynth/pkg/quote"
)

// JSONLWriter writes one compact JSON object per line. Field order follows
// the quote struct declaration, so output is byte-stable across runs.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter wraps w in a JSON-lines encoder.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w)}
}

// Write encodes one record followed by a newline.
func (jw *JSONLWriter) Write(q quote.Quote) error {
	return jw.enc.Encode(q)
}

// Close implements Writer; JSON lines need no trailer.
func (jw *JSONLWriter) Close() error { return nil }

// JSONWriter writes all records as a single JSON array, optionally indented.
type JSONWriter struct {
	w      io.Writer
	pretty bool
	count  int
}

// NewJSONWriter builds an array writer over w. Pretty output indents each
// record two spaces.
func NewJSONWriter(w io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{w: w, pretty: pretty}
}

// Write appends one record to the array.
func (jw *JSONWriter) Write(q quote.Quote) error {
	var (
		buf []byte
		err error
	)
	if jw.pretty {
		buf, err = json.MarshalIndent(q, "  ", "  ")
	} else {
		buf, err = json.Marshal(q)
	}
	if err != nil {
		return err
	}
	head := "["
	if jw.count > 0 {
		head = ","
	}
	if jw.pretty {
		head += "\n  "
	}
	if _, err := io.WriteString(jw.w, head); err != nil {
		return err
	}
	if _, err := jw.w.Write(buf); err != nil {
		return err
	}
	jw.count++
	return nil
}

// Close terminates the array; an empty batch still renders as [].
func (jw *JSONWriter) Close() error {
	tail := "]"
	if jw.count == 0 {
		tail = "[]"
	} else if jw.pretty {
		tail = "\n]"
	}
	if jw.pretty {
		tail += "\n"
	}
	_, err := io.WriteString(jw.w, tail)
	return err
}
