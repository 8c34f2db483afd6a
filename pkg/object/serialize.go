package object

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// Blob
// ---------------------------------------------------------------------------

// MarshalBlob serializes a Blob to raw bytes (identity).
func MarshalBlob(b *Blob) []byte {
	out := make([]byte, len(b.Data))
	copy(out, b.Data)
	return out
}

// UnmarshalBlob deserializes raw bytes into a Blob.
func UnmarshalBlob(data []byte) (*Blob, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return &Blob{Data: out}, nil
}

// ---------------------------------------------------------------------------
// Version
// ---------------------------------------------------------------------------

// MarshalVersion serializes a Version to a deterministic text format:
//
//	version X
//	log Y
//
//	<blobhash> <path>
//	<blobhash> <path>
//	...
//
// File entries are sorted by path. The log line holds a single line of
// free-form text (newlines are escaped).
func MarshalVersion(v *Version) []byte {
	files := make([]VersionFile, len(v.Files))
	copy(files, v.Files)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "version %s\n", v.Label)
	fmt.Fprintf(&buf, "log %s\n", strings.ReplaceAll(v.Log, "\n", "\\n"))
	buf.WriteByte('\n')
	for _, f := range files {
		fmt.Fprintf(&buf, "%s %s\n", string(f.BlobHash), f.Path)
	}
	return buf.Bytes()
}

// UnmarshalVersion parses a Version from its serialized form.
func UnmarshalVersion(data []byte) (*Version, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("unmarshal version: missing header/body separator")
	}
	header := string(data[:idx])
	body := string(data[idx+2:])

	v := &Version{}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			key = line
			val = ""
		}
		switch key {
		case "version":
			v.Label = val
		case "log":
			v.Log = strings.ReplaceAll(val, "\\n", "\n")
		default:
			return nil, fmt.Errorf("unmarshal version: unknown header key %q", key)
		}
	}
	if v.Label == "" {
		return nil, fmt.Errorf("unmarshal version: missing version label")
	}

	for _, line := range strings.Split(body, "\n") {
		if line == "" {
			continue
		}
		hash, path, ok := strings.Cut(line, " ")
		if !ok || path == "" {
			return nil, fmt.Errorf("unmarshal version: malformed file entry %q", line)
		}
		v.Files = append(v.Files, VersionFile{Path: path, BlobHash: Hash(hash)})
	}
	return v, nil
}
