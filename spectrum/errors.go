package spectrum

// Error is a spectrum arithmetic or construction error code.
type Error int

const (
	ErrNone           Error = 0
	ErrShapeMismatch  Error = 1
	ErrShape          Error = 2
	ErrDivisionByZero Error = 3
	ErrExponent       Error = 4
	ErrChannelRange   Error = 5
	ErrEmptyName      Error = 6
	ErrDimension      Error = 7
	ErrNoChannels     Error = 8
)

var errMessages = [9]string{
	"No error",
	"Operands have the same dimension but different channel counts",
	"Count and uncertainty arrays do not match the declared shape",
	"Division by zero",
	"Compression exponent leaves no channels",
	"Channel range is invalid",
	"Spectrum name is empty",
	"Operands have different dimensions",
	"Spectrum has no channels",
}

// Error implements the error interface.
func (e Error) Error() string {
	if e >= 0 && int(e) < len(errMessages) {
		return errMessages[e]
	}
	return "unknown error"
}
