package component

import "fmt"

// Origin classifies how a component entered the working tree. Imported
// components keep their files under a shared directory that is stripped
// again when the component is written back.
type Origin string

const (
	OriginAuthored Origin = "authored"
	OriginImported Origin = "imported"
)

// ParseOrigin validates an origin label read from persistent storage.
func ParseOrigin(s string) (Origin, error) {
	switch Origin(s) {
	case OriginAuthored, OriginImported:
		return Origin(s), nil
	}
	return "", fmt.Errorf("unknown component origin %q", s)
}
