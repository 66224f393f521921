package grid

const (
	// DefaultResolutionX is the number of columns used when no resolution is set.
	DefaultResolutionX = 100
	// DefaultResolutionY is the number of rows used when no resolution is set.
	DefaultResolutionY = 100
)

type options struct {
	resolutionX int
	resolutionY int
}

// Option configures New.
type Option func(*options)

// WithResolution sets the number of columns (x) and rows (y). New fails with
// *ErrInvalidResolution if either is below one.
func WithResolution(x, y int) Option {
	return func(o *options) {
		o.resolutionX = x
		o.resolutionY = y
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		resolutionX: DefaultResolutionX,
		resolutionY: DefaultResolutionY,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
