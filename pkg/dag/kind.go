package dag

import "fmt"

// Kind classifies a node for sizing, coloring and click handling.
type Kind int

const (
	// KindSkill is a leaf learning item, typically one entry of a module.
	KindSkill Kind = iota
	// KindTopic is a learning module.
	KindTopic
	// KindCategory is the synthetic subject node every depth-1 module hangs off.
	KindCategory
	// KindRoot is the synthetic absolute origin ("the learner").
	KindRoot
)

var kindNames = map[Kind]string{
	KindSkill:    "skill",
	KindTopic:    "topic",
	KindCategory: "category",
	KindRoot:     "root",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsSynthetic reports whether nodes of this kind are created by the builder
// rather than sourced from records.
func (k Kind) IsSynthetic() bool { return k == KindRoot || k == KindCategory }

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown node kind %q", b)
	}
	*k = v
	return nil
}

// ParseKind resolves a kind name.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindSkill, false
}

// Status is the prerequisite-gated progress state of a node.
type Status int

const (
	// StatusLocked means at least one prerequisite is not completed.
	StatusLocked Status = iota
	// StatusInProgress means the node is available but not finished.
	StatusInProgress
	// StatusCompleted means the node is in the completion set.
	StatusCompleted
)

var statusNames = map[Status]string{
	StatusLocked:     "locked",
	StatusInProgress: "in-progress",
	StatusCompleted:  "completed",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for k, name := range statusNames {
		if name == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", b)
}
