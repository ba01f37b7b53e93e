package grd

import "github.com/colorwav3/gradkit"

// Option configures Decode.
type Option func(*options)

type options struct {
	name          string
	sampler       gradkit.Sampler
	onRecordError func(*RecordError)
}

// DefaultName names a collection decoded without WithName. It also
// prefixes the names synthesized for unnamed gradients.
const DefaultName = "Gradients"

func defaultOptions() options {
	return options{
		name:    DefaultName,
		sampler: gradkit.Sample,
	}
}

// WithName sets the collection name, usually the file name without its
// extension. Unnamed gradients are called "<name> <n>".
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSampler sets the interpolation used to merge colour and
// transparency tracks. The default is gradkit.Sample.
func WithSampler(s gradkit.Sampler) Option {
	return func(o *options) {
		if s != nil {
			o.sampler = s
		}
	}
}

// WithRecordErrorHandler registers fn to be told about every gradient
// record that was skipped. Skips are also logged at warning level.
func WithRecordErrorHandler(fn func(*RecordError)) Option {
	return func(o *options) {
		o.onRecordError = fn
	}
}
