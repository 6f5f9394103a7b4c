package attribute

import "github.com/Carmen-Shannon/oxy-sg/common"

type settings struct {
	usage common.Usage
	name  string
}

// AttributeBuilderOption is a functional option for configuring an Attribute during construction.
type AttributeBuilderOption func(*settings)

// WithUsage sets the GPU usage hint. Defaults to common.UsageStatic.
//
// Parameters:
//   - u: static or dynamic
//
// Returns:
//   - AttributeBuilderOption: functional option to set the usage
func WithUsage(u common.Usage) AttributeBuilderOption {
	return func(s *settings) {
		s.usage = u
	}
}

// WithName sets a debug name, used as the GPU buffer label.
//
// Parameters:
//   - name: the label
//
// Returns:
//   - AttributeBuilderOption: functional option to set the name
func WithName(name string) AttributeBuilderOption {
	return func(s *settings) {
		s.name = name
	}
}
