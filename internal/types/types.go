// Package types contains common types used across the message and codec packages.
package types

import "io"

// Renderer is an interface that is used to render a type to a string or a writer.
type Renderer interface {
	// Render renders the type to a string with the given options.
	Render(opts *RenderOptions) string
	// RenderTo renders the type to a writer with the given options.
	RenderTo(w io.Writer, opts *RenderOptions) (int, error)
}

// RenderOptions is a struct that is used to pass options to rendering methods.
type RenderOptions struct {
	// AbsoluteForm renders origin-form request targets in absolute-form,
	// as required when the request is sent to a proxy.
	AbsoluteForm bool `json:"absolute_form,omitempty"`
	// OmitHost disables the Host header that is otherwise derived from the request authority.
	OmitHost bool `json:"omit_host,omitempty"`
}
