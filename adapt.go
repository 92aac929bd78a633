package datasrc

import "fmt"

// FileSuffix is appended to an argument name to form its file companion
// in Bind: "body" and "body_file" fold into one Data.
const FileSuffix = "_file"

// Coerce returns v itself when it is already a *Data and New(v, opts...)
// otherwise. It lets functions accept either raw values or prepared Data.
func Coerce(v any, opts ...Option) (*Data, error) {
	if d, ok := v.(*Data); ok && d != nil {
		return d, nil
	}
	return New(v, opts...)
}

// CoercePair merges a data value and its file companion into one Data.
// A *Data passed as data with no file is reused as is; otherwise exactly
// one of the two must be set and it becomes WithData or WithFile.
func CoercePair(data, file any, opts ...Option) (*Data, error) {
	if d, ok := data.(*Data); ok && d != nil && isNil(file) {
		return d, nil
	}
	if d, ok := file.(*Data); ok && d != nil && isNil(data) {
		return d, nil
	}

	all := append(opts[:len(opts):len(opts)], WithData(data), WithFile(file))
	return New(nil, all...)
}

// Bind converts the named entries of args to *Data in place.
//
// For each name, a companion entry "<name>_file" is folded in with
// CoercePair and removed; without one the entry goes through Coerce.
// Names missing from args are skipped. Errors name the argument.
//
// Example:
//
//	args := map[string]any{"body_file": "/tmp/in.txt"}
//	if err := datasrc.Bind(args, "body"); err != nil {
//		return err
//	}
//	body := args["body"].(*datasrc.Data)
func Bind(args map[string]any, names ...string) error {
	for _, name := range names {
		fileKey := name + FileSuffix
		val, hasVal := args[name]
		file, hasFile := args[fileKey]

		var (
			d   *Data
			err error
		)
		switch {
		case hasFile:
			d, err = CoercePair(val, file)
			delete(args, fileKey)
		case hasVal:
			d, err = Coerce(val)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("argument %q: %w", name, err)
		}
		args[name] = d
	}
	return nil
}

// Adapt wraps fn so callers can pass any value New accepts, or a *Data.
//
// Example:
//
//	count := datasrc.Adapt(func(d *datasrc.Data) (int, error) {
//		lines, err := d.ReadLines()
//		return len(lines), err
//	})
//	n, err := count("a\nb\n")
func Adapt[T any](fn func(*Data) (T, error), opts ...Option) func(any) (T, error) {
	return func(v any) (T, error) {
		d, err := Coerce(v, opts...)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(d)
	}
}
