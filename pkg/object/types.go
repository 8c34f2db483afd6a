package object

// Hash is a 64-character hex-encoded SHA-256 digest.
type Hash string

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob    ObjectType = "blob"
	TypeVersion ObjectType = "version"
)

// Blob holds raw file data.
type Blob struct {
	Data []byte
}

// VersionFile is one file entry inside a version snapshot.
type VersionFile struct {
	Path     string // forward-slash, relative to the component root
	BlobHash Hash
}

// Version is an immutable snapshot of a component's file set at a
// given version label.
type Version struct {
	Label string
	Log   string
	Files []VersionFile // sorted by Path
}

// File returns the entry for the given path, if present.
func (v *Version) File(path string) (VersionFile, bool) {
	for _, f := range v.Files {
		if f.Path == path {
			return f, true
		}
	}
	return VersionFile{}, false
}
