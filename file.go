package fastjson

import "os"

// ReadFile reads the entire file at path and parses it in-situ: the file's
// own backing buffer becomes the document's string pool, per spec.md §6
// ("read_file ... applies read with in-situ enabled, the file buffer
// becoming the document's string pool").
func ReadFile(path string, opts ...ReadOption) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newErr(ErrFileOpen, 0, "cannot read file %q: %v", path, err)
	}
	buf := make([]byte, len(data), len(data)+4)
	copy(buf, data)
	allOpts := make([]ReadOption, 0, len(opts)+1)
	allOpts = append(allOpts, WithInsitu())
	allOpts = append(allOpts, opts...)
	return Read(buf, allOpts...)
}

// WriteFile serializes doc and writes it to path.
func WriteFile(path string, doc Document, opts ...WriteOption) error {
	b, err := Write(doc, opts...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return newErr(ErrFileWrite, 0, "cannot write file %q: %v", path, err)
	}
	return nil
}
