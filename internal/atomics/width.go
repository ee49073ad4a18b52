package atomics

import "fmt"

// Width selects one of the five atomic width classes a target may support.
type Width uint8

const (
	W8 Width = iota
	W16
	W32
	W64
	WPtr

	widthCount = 5
)

// Widths lists every width class in canonical emission order.
func Widths() [widthCount]Width {
	return [widthCount]Width{W8, W16, W32, W64, WPtr}
}

// ParseWidth converts a selector token ("8", "16", "32", "64", "ptr")
// into a Width.
func ParseWidth(tok string) (Width, error) {
	switch tok {
	case "8":
		return W8, nil
	case "16":
		return W16, nil
	case "32":
		return W32, nil
	case "64":
		return W64, nil
	case "ptr":
		return WPtr, nil
	default:
		return 0, fmt.Errorf("invalid atomic width %q (expected 8|16|32|64|ptr)", tok)
	}
}

func (w Width) String() string {
	switch w {
	case W8:
		return "8"
	case W16:
		return "16"
	case W32:
		return "32"
	case W64:
		return "64"
	case WPtr:
		return "ptr"
	default:
		return fmt.Sprintf("Width(%d)", uint8(w))
	}
}
