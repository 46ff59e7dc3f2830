package types

// UnknownPerson is the reserved person name for a detected face cluster with
// no identity assigned. It denotes "face found, nobody named", not the
// absence of a person record.
const UnknownPerson = "_UNKNOWN_"

// Person is a named (or unnamed) face cluster.
type Person struct {
	PK          int64
	UUID        string
	Name        string // UnknownPerson when the cluster has no identity
	DisplayName string
	FaceCount   int64
	KeyFacePK   int64
	Favorite    bool
}

// Unknown reports whether the person is the detected-but-unidentified
// sentinel cluster.
func (p *Person) Unknown() bool { return p.Name == UnknownPerson }

// FaceState classifies how a detected face relates to a person record.
type FaceState int

const (
	// FaceIdentified is a face linked to a named person.
	FaceIdentified FaceState = iota
	// FaceUnidentified is an automatically detected face linked to the
	// unknown-person sentinel cluster.
	FaceUnidentified
	// FaceManualUnnamed is a manually added face with no person link at all.
	// This is a valid, queryable state; the ordinary person join drops it.
	FaceManualUnnamed
)

// String returns the state name.
func (s FaceState) String() string {
	switch s {
	case FaceIdentified:
		return "identified"
	case FaceUnidentified:
		return "unidentified"
	case FaceManualUnnamed:
		return "manual-unnamed"
	default:
		return "unknown"
	}
}

// Face is a per-asset detected face region. Center coordinates and size are
// normalized to the image dimensions (0..1).
type Face struct {
	PK        int64
	UUID      string
	AssetUUID string
	PersonPK  int64 // 0 when no person link exists
	State     FaceState
	Manual    bool // manually added rather than machine-detected

	CenterX float64
	CenterY float64
	Size    float64
	Quality float64
}
