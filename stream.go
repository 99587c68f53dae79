package ron

import "io"

// UnmarshalReader reads r to completion and parses the result as one RON
// document into v. Read failures surface as KindIO errors; everything after
// the read behaves exactly like [Unmarshal].
func UnmarshalReader(r io.Reader, v any, opts *Options) error {
	data, err := io.ReadAll(r)
	if err != nil {
		e := newError(KindIO)
		e.Message = err.Error()
		e.WrappedErr = err
		return e
	}
	return Unmarshal(data, v, opts)
}

// MarshalWriter renders v as compact RON and writes it to w, reporting
// write failures as KindIO errors.
func MarshalWriter(w io.Writer, v any, opts *Options) error {
	return MarshalPrettyWriter(w, v, DefaultPrettyConfig().Compact(), opts)
}

// MarshalPrettyWriter is [MarshalPretty] with the output sent to w.
func MarshalPrettyWriter(w io.Writer, v any, cfg PrettyConfig, opts *Options) error {
	data, err := MarshalPretty(v, cfg, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		e := newError(KindIO)
		e.Message = err.Error()
		e.WrappedErr = err
		return e
	}
	return nil
}
