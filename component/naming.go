package component

import (
	"fmt"
	"strconv"
	"strings"
)

// Side tokens. A component's fullName is "<name>_<side><index>", e.g.
// "arm_L0". Node names append the local attachment-point name:
// "arm_L0_wrist".
const (
	SideCenter = "C"
	SideLeft   = "L"
	SideRight  = "R"
)

// FormatFullName builds the unique component identifier.
func FormatFullName(name, side string, index int) string {
	return fmt.Sprintf("%s_%s%d", name, side, index)
}

// ParseFullName splits "arm_L0" into its parts. ok is false when the
// string does not follow the convention.
func ParseFullName(fullName string) (name, side string, index int, ok bool) {
	i := strings.LastIndex(fullName, "_")
	if i <= 0 || i == len(fullName)-1 {
		return "", "", 0, false
	}
	name = fullName[:i]
	tail := fullName[i+1:]
	side = tail[:1]
	if side != SideCenter && side != SideLeft && side != SideRight {
		return "", "", 0, false
	}
	index, err := strconv.Atoi(tail[1:])
	if err != nil {
		return "", "", 0, false
	}
	return name, side, index, true
}

// SplitNodeName splits a guide node name into the owning component's
// fullName (first two underscore segments) and the local attachment-point
// name (the rest). The local name may itself contain underscores.
func SplitNodeName(nodeName string) (fullName, local string) {
	parts := strings.Split(nodeName, "_")
	if len(parts) < 2 {
		return "", ""
	}
	fullName = parts[0] + "_" + parts[1]
	local = strings.Join(parts[2:], "_")
	return fullName, local
}

// MirrorSide swaps left and right. Center maps to itself.
func MirrorSide(side string) string {
	switch side {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	default:
		return side
	}
}

// MirrorName converts every side-tagged segment of a node or component
// name to the opposite side: "arm_L0_root" -> "arm_R0_root". Segments
// that are not a side token followed by an optional index pass through.
func MirrorName(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if swapped, ok := mirrorSegment(p); ok {
			parts[i] = swapped
		}
	}
	return strings.Join(parts, "_")
}

func mirrorSegment(seg string) (string, bool) {
	if seg == "" {
		return seg, false
	}
	head := seg[:1]
	if head != SideLeft && head != SideRight {
		return seg, false
	}
	for _, r := range seg[1:] {
		if r < '0' || r > '9' {
			return seg, false
		}
	}
	return MirrorSide(head) + seg[1:], true
}
